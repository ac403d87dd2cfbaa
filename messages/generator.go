// Package messages turns benchmark progress into human readable or machine
// readable text.
package messages

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Swind/markbench/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Generator produces the text for each reporting event.
type Generator interface {
	// TestMessage announces a workload about to run on threads lanes.
	TestMessage(id string, threads int) string

	// ListResults describes the counts of a finished run.
	ListResults(result *core.RunResult) string

	// ListRhedstoneCount describes the final scores.
	ListRhedstoneCount(scores core.Scores) string
}

// PlainLocale selects the tab-separated machine readable generator.
const PlainLocale = "plain"

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en-US"

// ErrUnknownLocale is returned by New for locales without resources.
var ErrUnknownLocale = errors.New("unknown locale")

// Locales lists every locale New accepts.
func Locales() ([]string, error) {
	res, err := loadResources()
	if err != nil {
		return nil, err
	}
	return append(res.tags(), PlainLocale), nil
}

// New returns the generator for locale.
func New(locale string) (Generator, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if strings.EqualFold(locale, PlainLocale) {
		return Plain{}, nil
	}

	res, err := loadResources()
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownLocale, locale, err)
	}
	loc, ok := res.Locales[tag.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	return &localized{
		res:     loc,
		printer: message.NewPrinter(tag),
	}, nil
}

// EnUS returns the American English generator.
func EnUS() Generator {
	g, err := New("en-US")
	if err != nil {
		panic(err)
	}
	return g
}

type localized struct {
	res     localeResources
	printer *message.Printer
}

func (g *localized) displayName(id string) string {
	if name, ok := g.res.Names[id]; ok {
		return name
	}
	return g.printer.Sprintf(g.res.UnknownTest, id)
}

func (g *localized) TestMessage(id string, threads int) string {
	return g.printer.Sprintf(g.res.Running, g.displayName(id), threads) + "\n"
}

func (g *localized) ListResults(result *core.RunResult) string {
	if len(result.Counts) == 1 {
		return g.printer.Sprintf(g.res.SingleResult, result.Counts[0]) + "\n"
	}
	var b strings.Builder
	b.WriteString(g.res.MultiHeader)
	b.WriteByte('\n')
	for _, c := range result.Counts {
		b.WriteString(g.printer.Sprintf(g.res.MultiLine, c))
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *localized) ListRhedstoneCount(scores core.Scores) string {
	return g.printer.Sprintf(g.res.SingleScore, scores.SingleThread) + "\n" +
		g.printer.Sprintf(g.res.MultiScore, scores.AllThread) + "\n"
}

// Plain emits one tab-separated record per event:
//
//	run	<id>	<threads>
//	result	<id>	<threads>	<elapsed ns>	<count>,<count>...
//	score	single	<value>
//	score	all	<value>
type Plain struct{}

func (Plain) TestMessage(id string, threads int) string {
	return "run\t" + id + "\t" + strconv.Itoa(threads) + "\n"
}

func (Plain) ListResults(result *core.RunResult) string {
	counts := make([]string, len(result.Counts))
	for i, c := range result.Counts {
		counts[i] = strconv.FormatUint(c, 10)
	}
	return "result\t" + result.WorkloadID +
		"\t" + strconv.Itoa(result.Threads()) +
		"\t" + strconv.FormatInt(result.Elapsed.Nanoseconds(), 10) +
		"\t" + strings.Join(counts, ",") + "\n"
}

func (Plain) ListRhedstoneCount(scores core.Scores) string {
	return "score\tsingle\t" + strconv.FormatFloat(scores.SingleThread, 'f', 6, 64) + "\n" +
		"score\tall\t" + strconv.FormatFloat(scores.AllThread, 'f', 6, 64) + "\n"
}

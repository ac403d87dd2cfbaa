//go:build !linux

package core

import "errors"

var errAffinityUnsupported = errors.New("lane pinning is only supported on linux")

func pinCurrentThread(cpu int) error {
	return errAffinityUnsupported
}

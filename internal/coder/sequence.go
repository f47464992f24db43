// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package coder

import (
	xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"
	"github.com/samgomena/serde-xdr/internal/errors"
)

// seqState tracks one in-progress wire sequence. The count prefix is read
// exactly once, on first use, and then counted down as the consumer pulls
// elements.
type seqState byte

const (
	seqUnstarted seqState = iota
	seqRemaining
	seqDone
)

type sequenceDecoder struct {
	d         *decoder
	state     seqState
	total     int
	remaining int
}

var _ xdrinterfaces.SequenceDecoder = &sequenceDecoder{}

func (s *sequenceDecoder) start() error {
	n, err := s.d.DecodeUnsignedInt()
	if err != nil {
		return err
	}
	if uint64(n) > uint64(maxInt) {
		return errors.LengthError{Actual: uint64(n)}
	}

	s.total = int(n)
	s.remaining = int(n)
	s.state = seqRemaining
	return nil
}

func (s *sequenceDecoder) Len() (int, error) {
	if s.state == seqUnstarted {
		if err := s.start(); err != nil {
			return 0, err
		}
	}
	return s.total, nil
}

func (s *sequenceDecoder) More() (bool, error) {
	switch s.state {
	case seqUnstarted:
		if err := s.start(); err != nil {
			return false, err
		}
	case seqDone:
		return false, nil
	}

	if s.remaining == 0 {
		s.state = seqDone
		return false, nil
	}
	s.remaining--
	return true, nil
}

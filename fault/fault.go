// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrAlreadyMember         = ExistsError("node is already a tree member")
	ErrConfigurationNotTable = InvalidError("configuration did not return a table")
	ErrCorruptTree           = ProcessError("tree structure is corrupt")
	ErrDuplicateKey          = ExistsError("key already exists")
	ErrForeignNode           = InvalidError("node belongs to a different tree")
	ErrInvalidCount          = InvalidError("count must be positive")
	ErrInvalidHandle         = InvalidError("invalid node handle")
	ErrInvalidLoggerChannel  = InvalidError("invalid logger channel")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrInvalidWorkerCount    = InvalidError("worker count must be positive")
	ErrKeyNotFound           = NotFoundError("key not found")
	ErrMissingConfigFile     = NotFoundError("configuration file is required")
	ErrNotADirectory         = InvalidError("path is not a directory")
	ErrNotMember             = InvalidError("node is not a tree member")
	ErrNotPlainFileName      = InvalidError("file name must not contain a path")
	ErrUnknownCommand        = InvalidError("unknown command")
	ErrVerificationFailed    = ProcessError("tree verification failed")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }

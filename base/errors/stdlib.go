// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import "errors"

// ErrUnsupported indicates that a requested operation cannot be performed,
// because it is unsupported.
var ErrUnsupported = errors.ErrUnsupported

// As is equivalent to [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Is is equivalent to [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// Join is equivalent to [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }

// New is equivalent to [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is equivalent to [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

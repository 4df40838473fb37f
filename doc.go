// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package utf8count counts the UTF-8 encoded code points in a buffer.
//
// Two counters are provided: a byte-at-a-time reference implementation
// ([CountScalar]) and a word-parallel implementation ([CountSWAR]) that
// classifies eight bytes at a time using bit tricks and a population count.
// Both return identical results for every input.
//
// Neither counter decodes or validates UTF-8. A byte is either a continuation
// byte (0b10xxxxxx) or it starts a code point, and only the latter are
// counted. For valid UTF-8 the result matches [unicode/utf8.RuneCount].
package utf8count

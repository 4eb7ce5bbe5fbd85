package gclutil

/*

This file contains code that is derived from
https://github.com/phuslu/log

The original is subject to the following license.

MIT License

Copyright (c) 2022 Phus Lu

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

const hexDigits = "0123456789abcdef"

var escapes = [256]bool{
	'"':  true,
	'\\': true,
}

func init() {
	for i := 0; i < 0x20; i++ {
		escapes[i] = true
	}
}

func appendEscaped(b []byte, c byte) []byte {
	switch c {
	case '"':
		return append(b, '\\', '"')
	case '\\':
		return append(b, '\\', '\\')
	case '\n':
		return append(b, '\\', 'n')
	case '\r':
		return append(b, '\\', 'r')
	case '\t':
		return append(b, '\\', 't')
	default:
		return append(b, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
	}
}

func (b *JBuilder) escapeb(n []byte) {
	l := len(n)
	j := 0
	if l > 0 {
		// Hint the compiler to remove bounds checks in the loop below.
		_ = n[l-1]
	}
	for i := 0; i < l; i++ {
		if escapes[n[i]] {
			b.B = append(b.B, n[j:i]...)
			b.B = appendEscaped(b.B, n[i])
			j = i + 1
		}
	}
	b.B = append(b.B, n[j:]...)
}

func (b *JBuilder) escapes(s string) {
	n := len(s)
	j := 0
	if n > 0 {
		// Hint the compiler to remove bounds checks in the loop below.
		_ = s[n-1]
	}
	for i := 0; i < n; i++ {
		if escapes[s[i]] {
			b.B = append(b.B, s[j:i]...)
			b.B = appendEscaped(b.B, s[i])
			j = i + 1
		}
	}
	b.B = append(b.B, s[j:]...)
}

func (b *JBuilder) string(s string) {
	for _, c := range []byte(s) {
		if escapes[c] {
			b.escapes(s)
			return
		}
	}
	b.B = append(b.B, s...)
}

func (b *JBuilder) bytes(n []byte) {
	for _, c := range n {
		if escapes[c] {
			b.escapeb(n)
			return
		}
	}
	b.B = append(b.B, n...)
}

// uniqueElements and patienceLCS below are ported from a patience-diff
// implementation distributed under the MIT license:
//
//	MIT License
//
//	Copyright (c) 2022 Peter Evans
//
//	Permission is hereby granted, free of charge, to any person obtaining a copy
//	of this software and associated documentation files (the "Software"), to deal
//	in the Software without restriction, including without limitation the rights
//	to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
//	copies of the Software, and to permit persons to whom the Software is
//	furnished to do so, subject to the following conditions:
//
//	The above copyright notice and this permission notice shall be included in all
//	copies or substantial portions of the Software.
//
//	THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
//	IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
//	FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
//	AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
//	LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
//	OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
//	SOFTWARE.
package tridiff

import "slices"

// uniqueElements returns the elements of a that occur exactly once,
// along with their original indices, the anchor set patience diff
// recurses around. Ported from the retrieval pack's patience-diff
// implementation nearly verbatim; it is algorithm-agnostic plumbing
// with no domain surface to adapt.
func uniqueElements[E comparable](a []E) (elements []E, indices []int) {
	counts := make(map[E]int, len(a))
	for _, e := range a {
		counts[e]++
	}
	for i, e := range a {
		if counts[e] == 1 {
			elements = append(elements, e)
			indices = append(indices, i)
		}
	}
	return elements, indices
}

// patienceLCS computes the longest common subsequence of two slices of
// already-unique elements via classic O(nm) dynamic programming,
// returning matched index pairs in ascending order.
func patienceLCS[E comparable](a, b []E) [][2]int {
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
		}
	}
	i, j := len(a), len(b)
	pairs := make([][2]int, 0, table[i][j])
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			pairs = append(pairs, [2]int{i - 1, j - 1})
			i--
			j--
		case table[i-1][j] > table[i][j-1]:
			i--
		default:
			j--
		}
	}
	slices.Reverse(pairs)
	return pairs
}

// ComputePatience computes an edit script by recursively anchoring on
// the longest common subsequence of elements that occur exactly once
// on each side, falling back to a full delete+insert once no unique
// anchor remains. Like histogram, it gives no minimality guarantee but
// tends to produce diffs that read as a sequence of coherent
// insertions and deletions rather than an interleaving of unrelated
// matched lines, because common elements too frequent to disambiguate
// a position are never used as anchors at all.
func ComputePatience[E comparable](a, b []E) []Change {
	prefix := commonPrefixLength(a, b)
	a = a[prefix:]
	b = b[prefix:]
	suffix := commonSuffixLength(a, b)
	a = a[:len(a)-suffix]
	b = b[:len(b)-suffix]
	out := make([]Change, 0, 16)
	patienceRun(a, prefix, b, prefix, &out)
	return out
}

func patienceRun[E comparable](a []E, aPos int, b []E, bPos int, out *[]Change) {
	if len(a) == 0 && len(b) == 0 {
		return
	}
	if len(a) == 0 {
		*out = append(*out, Change{P1: aPos, P2: bPos, Ins: len(b)})
		return
	}
	if len(b) == 0 {
		*out = append(*out, Change{P1: aPos, P2: bPos, Del: len(a)})
		return
	}

	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	if i > 0 {
		patienceRun(a[i:], aPos+i, b[i:], bPos+i, out)
		return
	}
	j := 0
	for j < len(a) && j < len(b) && a[len(a)-1-j] == b[len(b)-1-j] {
		j++
	}
	if j > 0 {
		patienceRun(a[:len(a)-j], aPos, b[:len(b)-j], bPos, out)
		return
	}

	ua, idxa := uniqueElements(a)
	ub, idxb := uniqueElements(b)
	lcs := patienceLCS(ua, ub)
	if len(lcs) == 0 {
		*out = append(*out, Change{P1: aPos, P2: bPos, Del: len(a), Ins: len(b)})
		return
	}
	for i, pair := range lcs {
		lcs[i][0] = idxa[pair[0]]
		lcs[i][1] = idxb[pair[1]]
	}

	ga, gb := 0, 0
	for _, pair := range lcs {
		patienceRun(a[ga:pair[0]], aPos+ga, b[gb:pair[1]], bPos+gb, out)
		ga = pair[0] + 1
		gb = pair[1] + 1
	}
	patienceRun(a[ga:], aPos+ga, b[gb:], bPos+gb, out)
}

package tracking

import (
	"strings"
	"unicode/utf8"
)

// DiffOptions configures diff computation.
type DiffOptions struct {
	// MaxTokens limits the number of tokens per side for the Myers diff.
	// If exceeded, a heuristic diff is used. Default is 20000.
	// Set to a negative value to disable the limit.
	MaxTokens int

	// MaxMemoryMB limits memory usage for diff computation.
	// If the estimated memory exceeds this, a heuristic diff is used.
	// Default is 100MB. Set to a negative value to disable the limit.
	MaxMemoryMB int
}

// Default limits for diff computation.
const (
	// DefaultMaxDiffTokens is the default maximum tokens for Myers diff.
	DefaultMaxDiffTokens = 20000

	// DefaultMaxDiffMemoryMB is the default memory limit in megabytes.
	DefaultMaxDiffMemoryMB = 100
)

// DefaultDiffOptions returns default diff options.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{
		MaxTokens:   DefaultMaxDiffTokens,
		MaxMemoryMB: DefaultMaxDiffMemoryMB,
	}
}

// DiffType indicates the type of a diff segment.
type DiffType uint8

const (
	// DiffEqual indicates unchanged text.
	DiffEqual DiffType = iota

	// DiffInsert indicates added text.
	DiffInsert

	// DiffDelete indicates removed text.
	DiffDelete
)

// String returns a human-readable representation of the diff type.
func (dt DiffType) String() string {
	switch dt {
	case DiffEqual:
		return "equal"
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Segment is a run of text tagged with how it changed.
type Segment struct {
	Type  DiffType
	Value string
}

// Len returns the length of the segment in runes.
func (s Segment) Len() int {
	return utf8.RuneCountInString(s.Value)
}

// ComputeWordDiff computes a word-level diff between two strings.
func ComputeWordDiff(oldText, newText string, opts DiffOptions) []Segment {
	if oldText == newText {
		if oldText == "" {
			return nil
		}
		return []Segment{{Type: DiffEqual, Value: oldText}}
	}

	oldTokens := Tokenize(oldText)
	newTokens := Tokenize(newText)

	var ops []editOp
	if useHeuristic(len(oldTokens), len(newTokens), opts) {
		ops = heuristicDiff(oldTokens, newTokens)
	} else {
		ops = myersDiff(oldTokens, newTokens)
	}

	slideInsertions(ops)
	return buildSegments(ops)
}

// useHeuristic reports whether the input exceeds the Myers limits.
func useHeuristic(n, m int, opts DiffOptions) bool {
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxDiffTokens
	}
	if maxTokens > 0 && (n > maxTokens || m > maxTokens) {
		return true
	}

	// Myers keeps one V vector of 2*(n+m)+1 ints per edit step, and in the
	// worst case there are n+m steps.
	maxMemMB := opts.MaxMemoryMB
	if maxMemMB == 0 {
		maxMemMB = DefaultMaxDiffMemoryMB
	}
	if maxMemMB > 0 {
		maxD := int64(n + m)
		estimatedMB := maxD * (2*maxD + 1) * 8 / (1024 * 1024)
		if estimatedMB > int64(maxMemMB) {
			return true
		}
	}
	return false
}

// editOp is a single token-level edit.
type editOp struct {
	op    DiffType
	token string
}

// heuristicDiff matches identical tokens greedily in a single pass.
// It's less optimal than Myers but uses O(n+m) memory.
func heuristicDiff(oldTokens, newTokens []string) []editOp {
	n := len(oldTokens)
	m := len(newTokens)

	oldIndex := make(map[string][]int)
	for i, tok := range oldTokens {
		oldIndex[tok] = append(oldIndex[tok], i)
	}

	// Match each new token to the first unmatched old token at or after the
	// last match, keeping matches monotonic.
	matchOf := make([]int, m)
	last := -1
	for j, tok := range newTokens {
		matchOf[j] = -1
		for _, i := range oldIndex[tok] {
			if i > last {
				matchOf[j] = i
				last = i
				break
			}
		}
	}

	var ops []editOp
	i := 0
	for j := 0; j < m; j++ {
		if matchOf[j] < 0 {
			ops = append(ops, editOp{op: DiffInsert, token: newTokens[j]})
			continue
		}
		for ; i < matchOf[j]; i++ {
			ops = append(ops, editOp{op: DiffDelete, token: oldTokens[i]})
		}
		ops = append(ops, editOp{op: DiffEqual, token: oldTokens[i]})
		i++
	}
	for ; i < n; i++ {
		ops = append(ops, editOp{op: DiffDelete, token: oldTokens[i]})
	}
	return ops
}

// myersDiff implements the Myers diff algorithm.
// Returns a sequence of edit operations.
func myersDiff(oldTokens, newTokens []string) []editOp {
	n := len(oldTokens)
	m := len(newTokens)

	// Handle trivial cases
	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]editOp, m)
		for i := 0; i < m; i++ {
			ops[i] = editOp{op: DiffInsert, token: newTokens[i]}
		}
		return ops
	}
	if m == 0 {
		ops := make([]editOp, n)
		for i := 0; i < n; i++ {
			ops[i] = editOp{op: DiffDelete, token: oldTokens[i]}
		}
		return ops
	}

	maxD := n + m
	offset := maxD // V[-max..max] maps to slice[0..2*max]
	v := make([]int, 2*maxD+1)
	v[offset+1] = 0

	var trace [][]int

outer:
	for d := 0; d <= maxD; d++ {
		// Save trace BEFORE processing this d (backtracking needs the
		// state from the previous iteration)
		vCopy := make([]int, len(v))
		copy(vCopy, v)
		trace = append(trace, vCopy)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}

			y := x - k

			// Extend diagonal (equal tokens)
			for x < n && y < m && oldTokens[x] == newTokens[y] {
				x++
				y++
			}

			v[offset+k] = x

			if x >= n && y >= m {
				vFinal := make([]int, len(v))
				copy(vFinal, v)
				trace = append(trace, vFinal)
				break outer
			}
		}
	}

	return backtrack(trace, oldTokens, newTokens, offset)
}

// backtrack reconstructs the edit script from the trace.
func backtrack(trace [][]int, oldTokens, newTokens []string, offset int) []editOp {
	if len(trace) == 0 {
		return nil
	}

	x := len(oldTokens)
	y := len(newTokens)
	var ops []editOp

	// trace has d+1 entries for edit distance d; walk back from the final one
	for d := len(trace) - 2; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, editOp{op: DiffEqual, token: oldTokens[x]})
		}

		if d > 0 {
			if x > prevX {
				x--
				ops = append(ops, editOp{op: DiffDelete, token: oldTokens[x]})
			} else if y > prevY {
				y--
				ops = append(ops, editOp{op: DiffInsert, token: newTokens[y]})
			}
		}
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

// slideInsertions moves each run of insertions left while the token before
// it equals the run's last token. Both texts are unchanged by the move; the
// insertion just lands at the earliest equivalent boundary.
func slideInsertions(ops []editOp) {
	for i := 1; i < len(ops); i++ {
		if ops[i].op != DiffInsert || ops[i-1].op != DiffEqual {
			continue
		}
		j := i
		for j < len(ops) && ops[j].op == DiffInsert {
			j++
		}
		start, end := i, j
		for start > 0 && ops[start-1].op == DiffEqual && ops[start-1].token == ops[end-1].token {
			ops[start-1].op = DiffInsert
			ops[end-1].op = DiffEqual
			start--
			end--
		}
		i = j - 1
	}
}

// buildSegments coalesces an edit script into segments. Within a changed
// region all deletions are emitted before all insertions.
func buildSegments(ops []editOp) []Segment {
	var segs []Segment
	var del, ins strings.Builder

	flush := func() {
		if del.Len() > 0 {
			segs = appendSegment(segs, DiffDelete, del.String())
			del.Reset()
		}
		if ins.Len() > 0 {
			segs = appendSegment(segs, DiffInsert, ins.String())
			ins.Reset()
		}
	}

	for _, op := range ops {
		switch op.op {
		case DiffEqual:
			flush()
			segs = appendSegment(segs, DiffEqual, op.token)
		case DiffDelete:
			del.WriteString(op.token)
		case DiffInsert:
			ins.WriteString(op.token)
		}
	}
	flush()
	return segs
}

// appendSegment appends value, merging it into the last segment when the
// types match.
func appendSegment(segs []Segment, typ DiffType, value string) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Type == typ {
		segs[n-1].Value += value
		return segs
	}
	return append(segs, Segment{Type: typ, Value: value})
}

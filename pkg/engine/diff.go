package engine

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffKind labels a row of a line diff.
type DiffKind string

const (
	DiffSame   DiffKind = "same"
	DiffAdd    DiffKind = "add"
	DiffRemove DiffKind = "remove"
)

// DiffRow is one line of a diff.
type DiffRow struct {
	Kind DiffKind `json:"kind"`
	Text string   `json:"text"`
}

// MaxAlignCells bounds the line pairs ComputeDiff will align. Larger
// inputs fall back to ComputePositionalDiff.
const MaxAlignCells = 4_000_000

// ComputeDiff aligns the lines of base and next with difflib's sequence
// matcher. Within each replaced hunk, removals precede additions.
func ComputeDiff(base, next string) []DiffRow {
	a, b := lines(base), lines(next)
	if len(a)*len(b) > MaxAlignCells {
		return ComputePositionalDiff(base, next)
	}

	rows := make([]DiffRow, 0, len(a)+len(b))
	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			rows = appendRows(rows, DiffSame, a[op.I1:op.I2])
		case 'd':
			rows = appendRows(rows, DiffRemove, a[op.I1:op.I2])
		case 'i':
			rows = appendRows(rows, DiffAdd, b[op.J1:op.J2])
		case 'r':
			rows = appendRows(rows, DiffRemove, a[op.I1:op.I2])
			rows = appendRows(rows, DiffAdd, b[op.J1:op.J2])
		}
	}
	return rows
}

// ComputePositionalDiff compares base and next index by index. A differing
// position yields a removal when the old line is absent from next and an
// addition when the new line is absent from base; lines that merely moved
// produce no row.
func ComputePositionalDiff(base, next string) []DiffRow {
	a, b := lines(base), lines(next)
	inA, inB := lineSet(a), lineSet(b)

	rows := make([]DiffRow, 0, max(len(a), len(b)))
	for i := range max(len(a), len(b)) {
		if i < len(a) && i < len(b) && a[i] == b[i] {
			rows = append(rows, DiffRow{DiffSame, a[i]})
			continue
		}
		if i < len(a) && !inB[a[i]] {
			rows = append(rows, DiffRow{DiffRemove, a[i]})
		}
		if i < len(b) && !inA[b[i]] {
			rows = append(rows, DiffRow{DiffAdd, b[i]})
		}
	}
	return rows
}

// Count returns the number of added and removed rows.
func Count(rows []DiffRow) (added, removed int) {
	for _, r := range rows {
		switch r.Kind {
		case DiffAdd:
			added++
		case DiffRemove:
			removed++
		}
	}
	return added, removed
}

func appendRows(rows []DiffRow, kind DiffKind, ls []string) []DiffRow {
	for _, l := range ls {
		rows = append(rows, DiffRow{kind, l})
	}
	return rows
}

func lines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

func lineSet(ls []string) map[string]bool {
	m := make(map[string]bool, len(ls))
	for _, l := range ls {
		m[l] = true
	}
	return m
}

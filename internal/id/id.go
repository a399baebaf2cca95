package id

import (
	"fmt"
	"strconv"
	"strings"
)

// refSep separates the account number from the sequence in a reference.
const refSep = "/"

// FormatRecordRef returns a transaction reference like "12345-6/0003".
func FormatRecordRef(accountNumber string, seq int) string {
	return fmt.Sprintf("%s%s%04d", accountNumber, refSep, seq)
}

// ParseRecordRef splits "12345-6/0003" into account number and sequence.
func ParseRecordRef(ref string) (accountNumber string, seq int, err error) {
	i := strings.LastIndex(ref, refSep)
	if i <= 0 || i == len(ref)-1 {
		return "", 0, fmt.Errorf("invalid record reference format: %q", ref)
	}

	seq, err = strconv.Atoi(ref[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in record reference %q: %w", ref, err)
	}
	if seq < 1 {
		return "", 0, fmt.Errorf("invalid sequence in record reference %q: must be >= 1", ref)
	}

	return ref[:i], seq, nil
}

// NextSeq returns the sequence for the record appended after n existing ones.
func NextSeq(n int) int {
	return n + 1
}

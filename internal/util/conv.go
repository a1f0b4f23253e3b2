package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a positive database id.
func ParseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

// ParseIDList accepts ids as separate arguments or comma separated.
func ParseIDList(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("no ids given")
	}
	return ids, nil
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/eve/internal/application/usecase"
)

// parseTarget reads a section reference:
//
//	wifi                  core section
//	sensor.0, sensor[0]   live component by domain and index
//	sensor:dht:1a2b3c4d   disabled component block by key
func parseTarget(ref string) (usecase.Target, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return usecase.Target{}, fmt.Errorf("empty section reference")
	case strings.Count(ref, ":") == 2:
		return usecase.Target{Key: ref}, nil
	case strings.HasSuffix(ref, "]"):
		open := strings.LastIndex(ref, "[")
		if open <= 0 {
			return usecase.Target{}, fmt.Errorf("invalid section reference %q", ref)
		}
		return componentTarget(ref, ref[:open], ref[open+1:len(ref)-1])
	}
	if domain, idx, ok := strings.Cut(ref, "."); ok {
		return componentTarget(ref, domain, idx)
	}
	return usecase.Target{Core: ref}, nil
}

func componentTarget(ref, domain, idx string) (usecase.Target, error) {
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 || domain == "" {
		return usecase.Target{}, fmt.Errorf("invalid section reference %q", ref)
	}
	return usecase.Target{Domain: domain, Index: n}, nil
}

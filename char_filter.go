package minnow

import (
	"fmt"
	"sort"
	"strings"
)

// CharFilter rewrites the raw text before tokenization. String must return a
// stable description of the filter configuration, it feeds the analyzer
// fingerprint.
type CharFilter interface {
	Filter(string) string
	String() string
}

type MappingCharFilter struct {
	mapper map[string]string
}

func NewMappingCharFilter(mapper map[string]string) *MappingCharFilter {
	return &MappingCharFilter{mapper: mapper}
}

func (c *MappingCharFilter) Filter(s string) string {
	for k, v := range c.mapper {
		s = strings.Replace(s, k, v, -1)
	}
	return s
}

func (c *MappingCharFilter) String() string {
	keys := make([]string, 0, len(c.mapper))
	for k := range c.mapper {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=>%s", k, c.mapper[k])
	}
	return fmt.Sprintf("mapping(%s)", strings.Join(pairs, ","))
}

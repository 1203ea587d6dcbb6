package helper

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	om "github.com/cevaris/ordered_map"
)

// Convert a string of the form, 'f1,f2,f3...' into a slice of string values.
// 1) Split on comma.
// 2) Remove leading and trailing spaces and drop empty tokens.
func CsvToStringSliceTrimSpaces(s string) []string {
	retval := make([]string, 0)
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			retval = append(retval, t)
		}
	}
	return retval
}

// StringSliceToOrderedMap adds each value in s to an ordered map with key and value set to the value in s.
func StringSliceToOrderedMap(s []string) *om.OrderedMap {
	retval := om.NewOrderedMap()
	for _, v := range s {
		retval.Set(v, v)
	}
	return retval
}

// Function to build a list of values found in ordered map 'om' supplied as input.
// Output - this function modifies the supplied list 'l' and 'idx' by reference.
func OrderedMapValuesToStringSlice(log logger.Logger, om *om.OrderedMap, l *[]string, idx *int) {
	iter := om.IterFunc()
	if iter == nil {
		log.Panic("Failed to get iterFunc in OrderedMapValuesToStringSlice()")
	}
	for kv, ok := iter(); ok; kv, ok = iter() {
		(*l)[*idx] = kv.Value.(string)
		*idx++
	}
}

// ValueToString converts a database value into its string form.
// isNull is true for nil input, in which case retval is empty.
func ValueToString(input interface{}) (retval string, isNull bool) {
	switch v := input.(type) {
	case nil:
		return "", true
	case string:
		retval = v
	case []byte:
		retval = string(v)
	case int, int8, int16, int32, int64, uint, uint16, uint32, uint64:
		retval = fmt.Sprintf("%d", v)
	case float32:
		retval = strconv.FormatFloat(float64(v), 'f', -1, 32) // use 'f' to preserve all decimal points.
	case float64:
		retval = strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		retval = v.Format(time.RFC3339Nano)
	default:
		retval = fmt.Sprintf("%v", v)
	}
	return
}

// UniqueSortedStrings returns the distinct non-empty values of all supplied slices in ascending order.
func UniqueSortedStrings(s ...[]string) []string {
	seen := make(map[string]struct{})
	retval := make([]string, 0)
	for _, l := range s {
		for _, v := range l {
			if _, ok := seen[v]; ok || v == "" {
				continue
			}
			seen[v] = struct{}{}
			retval = append(retval, v)
		}
	}
	sort.Strings(retval)
	return retval
}

// SafeFileName replaces spaces so the name can be used as a file name prefix.
func SafeFileName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// Split splits s on the first instance of c, returning the left and right parts.
// If c is not found the right part is empty.
func Split(s string, c string) (string, string) {
	i := strings.Index(s, c)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+len(c):]
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// NumericToFloat64 normalizes an aggregate or NUMERIC column value into a
// float64. SQLite hands back int64 or float64, PostgreSQL decimal text or a
// driver.Valuer, and a SUM over no rows is NULL, which maps to 0.
func NumericToFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case []byte:
		return parseDecimal(string(n))
	case string:
		return parseDecimal(n)
	case *big.Int:
		if n == nil {
			return 0, nil
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, nil
	case *big.Float:
		if n == nil {
			return 0, nil
		}
		f, _ := n.Float64()
		return f, nil
	case *big.Rat:
		if n == nil {
			return 0, nil
		}
		f, _ := n.Float64()
		return f, nil
	case driver.Valuer:
		inner, err := n.Value()
		if err != nil {
			return 0, fmt.Errorf("reading numeric value: %w", err)
		}
		if _, again := inner.(driver.Valuer); again {
			return 0, fmt.Errorf("unsupported numeric type %T", v)
		}
		return NumericToFloat64(inner)
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	// Arbitrary-precision text that overflows ParseFloat's syntax rules.
	f, _, err := big.ParseFloat(s, 10, 128, big.ToNearestEven)
	if err != nil {
		return 0, fmt.Errorf("parsing numeric %q: %w", s, err)
	}
	out, _ := f.Float64()
	return out, nil
}

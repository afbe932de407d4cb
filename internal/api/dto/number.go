package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberError reports a numeric field that could not be read.
type NumberError struct {
	Input string
	Msg   string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("number: %s %s", e.Input, e.Msg)
}

// Number is a JSON numeric field that also accepts numeric strings, which is
// what HTML form inputs usually submit.
type Number struct {
	value  float64
	quoted bool
}

// NewNumber returns a Number holding an unquoted JSON value.
func NewNumber(f float64) Number { return Number{value: f} }

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return &NumberError{Input: string(b), Msg: "is not a valid string"}
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return &NumberError{Input: strconv.Quote(s), Msg: "is not numeric"}
		}
		*n = Number{value: f, quoted: true}
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return &NumberError{Input: string(b), Msg: "is not numeric"}
	}
	*n = Number{value: f}
	return nil
}

func (n Number) Float() float64 { return n.value }

// Int returns n as an int. JSON numbers are truncated toward zero; numeric
// strings must hold a whole number.
func (n Number) Int() (int, error) {
	f := n.value
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &NumberError{Input: fmt.Sprint(f), Msg: "is not a finite number"}
	}
	if n.quoted && f != math.Trunc(f) {
		return 0, &NumberError{Input: fmt.Sprint(f), Msg: "is not a whole number"}
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, &NumberError{Input: fmt.Sprint(f), Msg: "is out of range"}
	}
	return int(f), nil
}

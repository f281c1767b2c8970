package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag 7S 评估中的单项勾选，存储为 0/1。
// JSON 输入接受 true/false、数字和 "1"/"true" 等字符串。
type Flag int8

func BoolFlag(b bool) Flag {
	if b {
		return 1
	}
	return 0
}

func (f Flag) Bool() bool { return f != 0 }

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")), bytes.Equal(b, []byte("false")):
		*f = 0
		return nil
	case bytes.Equal(b, []byte("true")):
		*f = 1
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "0", "false", "off", "no":
			*f = 0
		default:
			*f = 1
		}
		return nil
	}
	n, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("无效的勾选值 %s", b)
	}
	*f = BoolFlag(n != 0)
	return nil
}

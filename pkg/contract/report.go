package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// 报告中恒存在的三个公共键。
const (
	KeyXRange  = "x_range"
	KeyYRange  = "y_range"
	KeyVariant = "tipo_superficie"
)

// Param: 报告中的一项。Value 仅可为 Range、float64 或 string。
type Param struct {
	Key   string
	Value any
}

// ParameterReport: 有序的参数名→值映射。
// 顺序：x_range, y_range, 变体标量（声明顺序）, tipo_superficie。
// 既用于展示，也作为存储记录的 Dimensiones 字段；JSON 编解码保持键序与值类型。
type ParameterReport []Param

// NewReport 按固定顺序组装报告。
func NewReport(v Variant, d Domain, scalars []Param) ParameterReport {
	out := make(ParameterReport, 0, len(scalars)+3)
	out = append(out, Param{Key: KeyXRange, Value: d.X}, Param{Key: KeyYRange, Value: d.Y})
	for _, p := range scalars {
		out = append(out, Param{Key: p.Key, Value: p.Value})
	}
	return append(out, Param{Key: KeyVariant, Value: string(v)})
}

// Get 按键查找。
func (r ParameterReport) Get(key string) (any, bool) {
	for _, p := range r {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Float 读取标量值。
func (r ParameterReport) Float(key string) (float64, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Variant 返回 tipo_superficie。
func (r ParameterReport) Variant() Variant {
	v, _ := r.Get(KeyVariant)
	s, _ := v.(string)
	return Variant(s)
}

// Clone 返回浅拷贝（值类型均不可变）。
func (r ParameterReport) Clone() ParameterReport {
	if r == nil {
		return nil
	}
	out := make(ParameterReport, len(r))
	copy(out, r)
	return out
}

func (r ParameterReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		switch p.Value.(type) {
		case Range, float64, string:
		default:
			return nil, fmt.Errorf("%w: report value %q has type %T", ErrInvalidInput, p.Key, p.Value)
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("report value %q: %w", p.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 按出现顺序解码：二元数值数组 → Range，数值 → float64，字符串 → string。
func (r *ParameterReport) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: report must be a JSON object", ErrInvalidInput)
	}
	out := ParameterReport{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: report key %v", ErrInvalidInput, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		v, err := decodeValue(raw)
		if err != nil {
			return fmt.Errorf("report value %q: %w", key, err)
		}
		out = append(out, Param{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return nil, ErrInvalidInput
	}
	switch t[0] {
	case 'n', '{', 't', 'f':
		return nil, fmt.Errorf("%w: unsupported value %s", ErrInvalidInput, t)
	case '[':
		var rg Range
		if err := json.Unmarshal(t, &rg); err != nil {
			return nil, err
		}
		return rg, nil
	case '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		var f float64
		if err := json.Unmarshal(t, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return f, nil
	}
}

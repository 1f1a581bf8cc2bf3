package csvfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"surfaces/pkg/contract"
)

// 列名；读取时 Volume 列也接受 Volumen。
const (
	ColDimensiones = "Dimensiones"
	ColArea        = "Area"
	ColVolume      = "Volume"
	colVolumeAlt   = "Volumen"
)

// Encode 写出表头与全部记录（每条记录一行，按追加顺序）。
// Dimensiones 为 JSON 对象；Area/Volume 为最短往返浮点文本或 inf。
func Encode(w io.Writer, recs []contract.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColDimensiones, ColArea, ColVolume}); err != nil {
		return err
	}
	for i, r := range recs {
		dims, err := json.Marshal(r.Dimensiones)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		row := []string{string(dims), contract.FormatMeasure(r.Area), contract.FormatMeasure(r.Volume)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode 解析 Encode 的输出。空输入视为空序列；表头或字段不合法时报错。
func Decode(r io.Reader) ([]contract.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	header, err := cr.Read()
	if err == io.EOF {
		return []contract.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	if header[0] != ColDimensiones || header[1] != ColArea || (header[2] != ColVolume && header[2] != colVolumeAlt) {
		return nil, fmt.Errorf("unexpected header %q", header)
	}
	out := []contract.Record{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var rec contract.Record
		if err := json.Unmarshal([]byte(row[0]), &rec.Dimensiones); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColDimensiones, err)
		}
		if rec.Area, err = contract.ParseMeasure(row[1]); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColArea, err)
		}
		if rec.Volume, err = contract.ParseMeasure(row[2]); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColVolume, err)
		}
		out = append(out, rec)
	}
}

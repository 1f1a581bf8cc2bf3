package registry

import (
	"bytes"
	"encoding/json"

	"surfaces/pkg/contract"
	csvstore "surfaces/plugins/store/csvfile"
	sqlstore "surfaces/plugins/store/sqlite"
)

// strictUnmarshal: 使用 DisallowUnknownFields 严格解码，拒绝未知字段。
func strictUnmarshal(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		// 保持零值（默认选项）
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// NewStore 工厂签名：接收原样 JSON Options。
type NewStore func(raw json.RawMessage) (contract.RecordStore, error)

// Store 工厂注册表（显式、零反射）。
var Store = map[string]NewStore{
	// csv: 每个 StoreID 一个 CSV 文件，追加时整体重写（默认原子替换）
	"csv": func(raw json.RawMessage) (contract.RecordStore, error) {
		var opts csvstore.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return csvstore.New(&opts)
	},
	// sqlite: 单库多 StoreID，事务内追加
	"sqlite": func(raw json.RawMessage) (contract.RecordStore, error) {
		var opts sqlstore.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return sqlstore.Open(&opts)
	},
}

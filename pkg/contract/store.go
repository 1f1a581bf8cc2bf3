package contract

import "context"

// RecordStore: 仅追加的配置记录存储。
// 约束：
//  1. Append 成功返回后，LoadAll(id) 的最后一项与 rec 结构相等（含无限哨兵）；
//  2. 资源不存在时 LoadAll 返回空序列且不报错；LoadAll 不修改资源；
//  3. 不做删除/原地更新/去重；同一 StoreID 单写者（不提供锁）；
//  4. 除“不存在”以外的 I/O 失败或内容损坏以 ErrStoreIO 上抛，不做重试。
type RecordStore interface {
	Append(ctx context.Context, id StoreID, rec Record) error
	LoadAll(ctx context.Context, id StoreID) ([]Record, error)
}

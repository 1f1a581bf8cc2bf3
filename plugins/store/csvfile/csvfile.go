// Package csvfile 实现基于 CSV 文件的仅追加记录存储：每个 StoreID 对应一个文件，
// 追加时读出全部记录、追加一条、整体重写。
package csvfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"surfaces/pkg/contract"
)

// DefaultStoreID: 默认存储文件名。
const DefaultStoreID contract.StoreID = "configuraciones.csv"

// Options: 最小必要选项。
type Options struct {
	// Dir: 存储根目录（必需）。
	Dir string `json:"dir"`
	// Atomic: 重写时是否使用原子替换（同目录临时文件 + rename）。
	// 默认值：true。未提供该字段时采用原子写；显式 false 可关闭（失败时文件可能被截断）。
	Atomic *bool `json:"atomic,omitempty"`
	// Flat: 是否扁平化（仅保留文件名，不保留目录层级）。默认 true。
	Flat *bool `json:"flat,omitempty"`
	// PermFile/PermDir: 可选权限；为 0 表示使用默认。
	PermFile os.FileMode `json:"perm_file,omitempty"`
	PermDir  os.FileMode `json:"perm_dir,omitempty"`
	// BufSize: 写缓冲区大小；<=0 使用默认。
	BufSize int `json:"buf_size,omitempty"`
}

type Store struct {
	root    string
	atomic  bool
	flat    bool
	permF   os.FileMode
	permD   os.FileMode
	bufSize int
}

// New 创建 CSV 记录存储。
func New(opts *Options) (*Store, error) {
	if opts == nil || strings.TrimSpace(opts.Dir) == "" {
		return nil, os.ErrInvalid
	}
	bsz := opts.BufSize
	if bsz <= 0 {
		bsz = 64 * 1024
	}
	pf := opts.PermFile
	if pf == 0 {
		pf = 0o644
	}
	pd := opts.PermDir
	if pd == 0 {
		pd = 0o755
	}
	flat := true
	if opts.Flat != nil {
		flat = *opts.Flat
	}
	atomic := true
	if opts.Atomic != nil {
		atomic = *opts.Atomic
	}
	return &Store{root: opts.Dir, atomic: atomic, flat: flat, permF: pf, permD: pd, bufSize: bsz}, nil
}

var _ contract.RecordStore = (*Store)(nil)

// LoadAll 按追加顺序返回全部记录；文件不存在时返回空序列。
func (s *Store) LoadAll(ctx context.Context, id contract.StoreID) ([]contract.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest, err := s.mapPath(id)
	if err != nil {
		return nil, err
	}
	return s.read(dest)
}

// Append 读出现有序列、追加 rec、整体重写。资源不存在时新建且仅含 rec。
func (s *Store) Append(ctx context.Context, id contract.StoreID, rec contract.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dest, err := s.mapPath(id)
	if err != nil {
		return err
	}
	recs, err := s.read(dest)
	if err != nil {
		return err
	}
	recs = append(recs, rec)
	var buf bytes.Buffer
	if err := Encode(&buf, recs); err != nil {
		return fmt.Errorf("%w: encode: %w", contract.ErrStoreIO, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), s.permD); err != nil {
		return ioErr(err)
	}
	if s.atomic {
		err = s.writeAtomic(ctx, dest, &buf)
	} else {
		err = s.writeOverwrite(ctx, dest, &buf)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return ioErr(err)
	}
	return nil
}

func (s *Store) read(dest string) ([]contract.Record, error) {
	f, err := os.Open(dest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []contract.Record{}, nil
		}
		return nil, ioErr(err)
	}
	defer f.Close()
	recs, err := Decode(bufio.NewReaderSize(f, s.bufSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", contract.ErrStoreIO, dest, err)
	}
	return recs, nil
}

func ioErr(err error) error { return fmt.Errorf("%w: %w", contract.ErrStoreIO, err) }

// mapPath: Clean + Join + 越界校验。
func (s *Store) mapPath(id contract.StoreID) (string, error) {
	rel := filepath.Clean(string(id))
	// Flat 优先：仅保留文件名并在此后校验名称合法
	if s.flat {
		rel = filepath.Base(rel)
		if rel == "." || rel == ".." || rel == "" || rel == string(filepath.Separator) {
			return "", contract.ErrPathInvalid
		}
		return filepath.Join(s.root, rel), nil
	}
	// 非扁平：禁止绝对路径、父级逃逸、Windows 卷名
	if rel == "." || rel == "" {
		return "", contract.ErrPathInvalid
	}
	if filepath.IsAbs(rel) {
		return "", contract.ErrPathInvalid
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", contract.ErrPathInvalid
	}
	if vol := filepath.VolumeName(rel); vol != "" {
		return "", contract.ErrPathInvalid
	}
	return filepath.Join(s.root, rel), nil
}

func (s *Store) writeOverwrite(ctx context.Context, dest string, r io.Reader) error {
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, s.permF)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, s.bufSize)
	if _, err := io.Copy(bw, readerWithCtx(ctx, r)); err != nil {
		return err
	}
	return bw.Flush()
}

func (s *Store) writeAtomic(ctx context.Context, dest string, r io.Reader) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, s.permF)

	bw := bufio.NewWriterSize(tmp, s.bufSize)
	if _, err := io.Copy(bw, readerWithCtx(ctx, r)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := osReplace(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// 最佳努力：同步父目录元数据
	_ = syncDir(dir)
	return nil
}

// readerWithCtx: 在每次 Read 前检查 ctx 是否已取消。
func readerWithCtx(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	default:
	}
	return cr.r.Read(p)
}

// Package fsstore 提供基于本地文件系统的参考文件存储实现
package fsstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"book-writer-api/internal/domain/entity"
	"book-writer-api/pkg/errors"
	"book-writer-api/pkg/metrics"
)

var tracer = otel.Tracer("fsstore")

// statConcurrency List 操作的 stat 并发上限
const statConcurrency = 8

// Store 文件系统参考文件存储
// 每请求一次同步落盘，无锁：同名并发写为 last-write-wins，
// 借助临时文件 + rename 保证单次写入原子，不产生字节交错
type Store struct {
	resolver *PathResolver
	name     string
}

// New 创建项目作用域的文件系统存储
// root 下布局为 {root}/{projectID}/references/{filename}
func New(root string) *Store {
	return &Store{
		resolver: NewPathResolver(root, true),
		name:     "filesystem",
	}
}

// NewLegacy 创建无项目作用域的 legacy 存储
// 固定操作 dir 目录，兼容单项目部署
func NewLegacy(dir string) *Store {
	return &Store{
		resolver: NewPathResolver(dir, false),
		name:     "legacy",
	}
}

// Name 返回存储实现标识
func (s *Store) Name() string {
	return s.name
}

// Resolver 返回路径解析器（就绪检查使用）
func (s *Store) Resolver() *PathResolver {
	return s.resolver
}

// List 枚举项目的参考文件，按文件名升序
// 目录不存在视为"项目尚无参考文件"，返回空列表
func (s *Store) List(ctx context.Context, projectID string) (_ []entity.ReferenceFileInfo, err error) {
	ctx, span := tracer.Start(ctx, "fsstore.List",
		trace.WithAttributes(attribute.String("reference.project_id", projectID)))
	defer span.End()
	defer func(start time.Time) { s.observe("list", start, err) }(time.Now())

	dir, err := s.resolver.Dir(projectID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			span.SetAttributes(attribute.Int("reference.count", 0))
			return []entity.ReferenceFileInfo{}, nil
		}
		return nil, s.fail(span, errors.Wrap(err, errors.CodeStorageError, "failed to list references"))
	}

	// ReadDir 已按文件名升序返回，过滤后顺序保持
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !entity.IsMarkdownName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}

	infos := make([]entity.ReferenceFileInfo, len(names))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(statConcurrency)
	for i, name := range names {
		g.Go(func() error {
			fi, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", name, err)
			}
			infos[i] = entity.ReferenceFileInfo{
				Name:         name,
				LastModified: fi.ModTime(),
				Size:         fi.Size(),
			}
			return nil
		})
	}
	if werr := g.Wait(); werr != nil {
		err = errors.Wrap(werr, errors.CodeStorageError, "failed to stat references")
		return nil, s.fail(span, err)
	}

	span.SetAttributes(attribute.Int("reference.count", len(infos)))
	return infos, nil
}

// Get 读取参考文件内容与元数据
func (s *Store) Get(ctx context.Context, projectID, filename string) (_ *entity.ReferenceFile, err error) {
	_, span := tracer.Start(ctx, "fsstore.Get",
		trace.WithAttributes(
			attribute.String("reference.project_id", projectID),
			attribute.String("reference.filename", filename),
		))
	defer span.End()
	defer func(start time.Time) { s.observe("get", start, err) }(time.Now())

	path, err := s.resolver.Resolve(projectID, filename)
	if err != nil {
		return nil, s.fail(span, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrFileNotFound
		}
		return nil, s.fail(span, errors.Wrap(err, errors.CodeStorageError, "failed to stat reference file"))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, s.fail(span, errors.Wrap(err, errors.CodeStorageError, "failed to read reference file"))
	}

	metrics.ReferenceFileSize.WithLabelValues("get").Observe(float64(fi.Size()))

	return &entity.ReferenceFile{
		Name:         filename,
		Content:      string(content),
		LastModified: fi.ModTime(),
		Size:         fi.Size(),
	}, nil
}

// Update 整体覆写已存在的参考文件
// 目标不存在时返回 NotFound，绝不隐式创建；
// 写入走临时文件 + rename，保证整文件原子替换
func (s *Store) Update(ctx context.Context, projectID, filename, content string) (_ *entity.ReferenceFileInfo, err error) {
	_, span := tracer.Start(ctx, "fsstore.Update",
		trace.WithAttributes(
			attribute.String("reference.project_id", projectID),
			attribute.String("reference.filename", filename),
			attribute.Int("reference.content_bytes", len(content)),
		))
	defer span.End()
	defer func(start time.Time) { s.observe("update", start, err) }(time.Now())

	path, err := s.resolver.Resolve(projectID, filename)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if content == "" {
		return nil, errors.ErrEmptyContent
	}

	// 仅允许更新已存在的文件
	if _, serr := os.Stat(path); serr != nil {
		if os.IsNotExist(serr) {
			err = errors.ErrFileNotFound
			return nil, err
		}
		err = errors.Wrap(serr, errors.CodeStorageError, "failed to stat reference file")
		return nil, s.fail(span, err)
	}

	if werr := atomicWrite(path, []byte(content)); werr != nil {
		err = errors.Wrap(werr, errors.CodeStorageError, "failed to write reference file")
		return nil, s.fail(span, err)
	}

	// 写后重新 stat，返回新鲜的 mtime/size
	fi, err := os.Stat(path)
	if err != nil {
		return nil, s.fail(span, errors.Wrap(err, errors.CodeStorageError, "failed to stat reference file after write"))
	}

	metrics.ReferenceFileSize.WithLabelValues("update").Observe(float64(fi.Size()))

	return &entity.ReferenceFileInfo{
		Name:         filename,
		LastModified: fi.ModTime(),
		Size:         fi.Size(),
	}, nil
}

// atomicWrite 同目录临时文件写入后 rename 到目标路径
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// observe 记录操作计数与时延指标
func (s *Store) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ReferenceStoreOpsTotal.WithLabelValues(s.name, op, status).Inc()
	metrics.ReferenceStoreOpDuration.WithLabelValues(s.name, op).Observe(time.Since(start).Seconds())
}

// fail 记录 span 错误并累加失败计数
func (s *Store) fail(span trace.Span, err error) error {
	span.RecordError(err)
	return err
}

package mcp

import (
	"context"
	"fmt"
	"log"
	"time"
)

func (h *Handler) listFiles(ctx context.Context, in *ListFilesInput) (*ListFilesOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &ListFilesInput{}
	}
	items, err := h.service.List(ctx, in.Path, in.Backend)
	if err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=list_files path=%s count=%d dur=%s", in.Path, len(items), time.Since(start))
	}
	return &ListFilesOutput{Items: items, Total: len(items)}, nil
}

func (h *Handler) readFile(ctx context.Context, in *ReadFileInput) (*ReadFileOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &ReadFileInput{}
	}
	if in.Path == "" {
		return nil, fmt.Errorf("mcp: missing path")
	}
	data, err := h.service.Read(ctx, in.Path, in.Backend)
	if err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=read_file path=%s size=%d dur=%s", in.Path, len(data), time.Since(start))
	}
	return &ReadFileOutput{Path: in.Path, Content: string(data), Size: len(data)}, nil
}

func (h *Handler) writeFile(ctx context.Context, in *WriteFileInput) (*WriteFileOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &WriteFileInput{}
	}
	if in.Path == "" {
		return nil, fmt.Errorf("mcp: missing path")
	}
	data := []byte(in.Content)
	if err := h.service.Write(ctx, in.Path, data, in.Backend); err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=write_file path=%s size=%d dur=%s", in.Path, len(data), time.Since(start))
	}
	return &WriteFileOutput{Message: fmt.Sprintf("Successfully wrote %v bytes to %v", len(data), in.Path)}, nil
}

func (h *Handler) copyFile(ctx context.Context, in *CopyFileInput) (*CopyFileOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &CopyFileInput{}
	}
	if in.Src == "" || in.Dst == "" {
		return nil, fmt.Errorf("mcp: missing src or dst")
	}
	if err := h.service.Copy(ctx, in.Src, in.Dst, in.SrcBackend, in.DstBackend); err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=copy_file src=%s dst=%s dur=%s", in.Src, in.Dst, time.Since(start))
	}
	return &CopyFileOutput{Message: fmt.Sprintf("Successfully copied %v to %v", in.Src, in.Dst)}, nil
}

func (h *Handler) renameFile(ctx context.Context, in *RenameFileInput) (*RenameFileOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &RenameFileInput{}
	}
	if in.Src == "" || in.Dst == "" {
		return nil, fmt.Errorf("mcp: missing src or dst")
	}
	if err := h.service.Rename(ctx, in.Src, in.Dst, in.Backend); err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=rename_file src=%s dst=%s dur=%s", in.Src, in.Dst, time.Since(start))
	}
	return &RenameFileOutput{Message: fmt.Sprintf("Successfully renamed %v to %v", in.Src, in.Dst)}, nil
}

func (h *Handler) createDir(ctx context.Context, in *CreateDirInput) (*CreateDirOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &CreateDirInput{}
	}
	if in.Path == "" {
		return nil, fmt.Errorf("mcp: missing path")
	}
	if err := h.service.CreateDir(ctx, in.Path, in.Backend); err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=create_dir path=%s dur=%s", in.Path, time.Since(start))
	}
	return &CreateDirOutput{Message: fmt.Sprintf("Successfully created directory %v", in.Path)}, nil
}

func (h *Handler) statFile(ctx context.Context, in *StatFileInput) (*StatFileOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &StatFileInput{}
	}
	if in.Path == "" {
		return nil, fmt.Errorf("mcp: missing path")
	}
	item, err := h.service.Stat(ctx, in.Path, in.Backend)
	if err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=stat_file path=%s dur=%s", in.Path, time.Since(start))
	}
	return &StatFileOutput{Item: item}, nil
}

package mcp

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
)

//go:embed tools/register_backend.md
var descRegisterBackend string

//go:embed tools/list_backends.md
var descListBackends string

//go:embed tools/set_default_backend.md
var descSetDefaultBackend string

//go:embed tools/remove_backend.md
var descRemoveBackend string

//go:embed tools/check_backend_health.md
var descCheckBackendHealth string

//go:embed tools/get_backend_stats.md
var descBackendStats string

//go:embed tools/list_files.md
var descListFiles string

//go:embed tools/read_file.md
var descReadFile string

//go:embed tools/write_file.md
var descWriteFile string

//go:embed tools/copy_file.md
var descCopyFile string

//go:embed tools/rename_file.md
var descRenameFile string

//go:embed tools/create_dir.md
var descCreateDir string

//go:embed tools/stat_file.md
var descStatFile string

func registerTools(registry *protoserver.Registry, h *Handler) error {
	if err := protoserver.RegisterTool[*RegisterBackendInput, *RegisterBackendOutput](registry, "register_backend", descRegisterBackend, func(ctx context.Context, in *RegisterBackendInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.registerBackend(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*ListBackendsInput, *ListBackendsOutput](registry, "list_backends", descListBackends, func(ctx context.Context, in *ListBackendsInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.listBackends(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*SetDefaultBackendInput, *SetDefaultBackendOutput](registry, "set_default_backend", descSetDefaultBackend, func(ctx context.Context, in *SetDefaultBackendInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.setDefaultBackend(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*RemoveBackendInput, *RemoveBackendOutput](registry, "remove_backend", descRemoveBackend, func(ctx context.Context, in *RemoveBackendInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.removeBackend(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*CheckHealthInput, *CheckHealthOutput](registry, "check_backend_health", descCheckBackendHealth, func(ctx context.Context, in *CheckHealthInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.checkBackendHealth(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*StatsInput, *StatsOutput](registry, "get_backend_stats", descBackendStats, func(ctx context.Context, in *StatsInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.backendStats(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*ListFilesInput, *ListFilesOutput](registry, "list_files", descListFiles, func(ctx context.Context, in *ListFilesInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.listFiles(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*ReadFileInput, *ReadFileOutput](registry, "read_file", descReadFile, func(ctx context.Context, in *ReadFileInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.readFile(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*WriteFileInput, *WriteFileOutput](registry, "write_file", descWriteFile, func(ctx context.Context, in *WriteFileInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.writeFile(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*CopyFileInput, *CopyFileOutput](registry, "copy_file", descCopyFile, func(ctx context.Context, in *CopyFileInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.copyFile(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*RenameFileInput, *RenameFileOutput](registry, "rename_file", descRenameFile, func(ctx context.Context, in *RenameFileInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.renameFile(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*CreateDirInput, *CreateDirOutput](registry, "create_dir", descCreateDir, func(ctx context.Context, in *CreateDirInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.createDir(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*StatFileInput, *StatFileOutput](registry, "stat_file", descStatFile, func(ctx context.Context, in *StatFileInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.statFile(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	return nil
}

func buildErrorResult(message string) (*schema.CallToolResult, *jsonrpc.Error) {
	return nil, jsonrpc.NewError(jsonrpc.InvalidParams, message, nil)
}

func buildSuccessResult(payload any) (*schema.CallToolResult, *jsonrpc.Error) {
	b, _ := json.Marshal(payload)
	return &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{
			schema.TextContent{Type: "text", Text: string(b)},
		},
		StructuredContent: map[string]any{"result": payload},
	}, nil
}

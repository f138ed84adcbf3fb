package mcp

import (
	"github.com/viant/omnifs"
)

type RegisterBackendInput struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Description   string `json:"description,omitempty"`
	ReadOnly      bool   `json:"readonly,omitempty"`
	Timeout       int    `json:"timeout,omitempty"`
	RetryAttempts int    `json:"retry_attempts,omitempty"`
	SetAsDefault  bool   `json:"set_as_default,omitempty"`
	// ValidateConnection defaults to true when omitted.
	ValidateConnection *bool `json:"validate_connection,omitempty"`
}

type RegisterBackendOutput struct {
	Message string `json:"message"`
}

type ListBackendsInput struct{}

type ListBackendsOutput struct {
	Backends []omnifs.Summary `json:"backends"`
}

type SetDefaultBackendInput struct {
	Name string `json:"name"`
}

type SetDefaultBackendOutput struct {
	Message string `json:"message"`
}

type RemoveBackendInput struct {
	Name  string `json:"name"`
	Force bool   `json:"force,omitempty"`
}

type RemoveBackendOutput struct {
	Message string `json:"message"`
}

type CheckHealthInput struct {
	Backend string `json:"backend,omitempty"`
}

type CheckHealthOutput struct {
	Health map[string]bool `json:"health"`
}

type StatsInput struct{}

type StatsOutput struct {
	Stats omnifs.Stats `json:"stats"`
}

type ListFilesInput struct {
	Path    string `json:"path,omitempty"`
	Backend string `json:"backend,omitempty"`
}

type ListFilesOutput struct {
	Items []omnifs.Item `json:"items"`
	Total int           `json:"total"`
}

type ReadFileInput struct {
	Path    string `json:"path"`
	Backend string `json:"backend,omitempty"`
}

type ReadFileOutput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Size    int    `json:"size"`
}

type WriteFileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Backend string `json:"backend,omitempty"`
}

type WriteFileOutput struct {
	Message string `json:"message"`
}

type CopyFileInput struct {
	Src        string `json:"src"`
	Dst        string `json:"dst"`
	SrcBackend string `json:"src_backend,omitempty"`
	DstBackend string `json:"dst_backend,omitempty"`
}

type CopyFileOutput struct {
	Message string `json:"message"`
}

type RenameFileInput struct {
	Src     string `json:"src"`
	Dst     string `json:"dst"`
	Backend string `json:"backend,omitempty"`
}

type RenameFileOutput struct {
	Message string `json:"message"`
}

type CreateDirInput struct {
	Path    string `json:"path"`
	Backend string `json:"backend,omitempty"`
}

type CreateDirOutput struct {
	Message string `json:"message"`
}

type StatFileInput struct {
	Path    string `json:"path"`
	Backend string `json:"backend,omitempty"`
}

type StatFileOutput struct {
	Item *omnifs.Item `json:"item"`
}

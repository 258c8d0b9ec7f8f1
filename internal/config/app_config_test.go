package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/embedhead-io/tree-cli/internal/utils"
)

type configTestCase struct {
	name              string
	globalContent     string
	localContent      string
	explicitPath      string
	expectIgnoreFile  string
	expectHidden      *bool
	expectDirsOnly    *bool
	expectMaxDepth    *int
	expectExclude     []string
	expectCombineCopy *bool
	expectTokens      *bool
	expectModel       string
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:              "local_overrides_global",
			globalContent:     "tree:\n  ignore_file: .globalignore\n  include_hidden: false\n  max_depth: 2\ncombine:\n  copy: true\n",
			localContent:      "tree:\n  ignore_file: .localignore\n  include_hidden: true\ncombine:\n  tokens:\n    enabled: true\n    model: custom\n",
			expectIgnoreFile:  ".localignore",
			expectHidden:      boolPointer(true),
			expectMaxDepth:    intPointer(2),
			expectCombineCopy: boolPointer(true),
			expectTokens:      boolPointer(true),
			expectModel:       "custom",
		},
		{
			name:             "explicit_path_only",
			globalContent:    "tree:\n  ignore_file: .globalignore\n",
			localContent:     "",
			explicitPath:     "custom.yaml",
			expectIgnoreFile: ".explicitignore",
			expectHidden:     nil,
			expectMaxDepth:   nil,
			expectTokens:     nil,
			expectModel:      "",
		},
		{
			name:           "dir_only_key_applies",
			globalContent:  "tree:\n  dir_only: true\n",
			localContent:   "",
			expectDirsOnly: boolPointer(true),
		},
		{
			name:          "exclude_lists_deduplicated",
			globalContent: "tree:\n  exclude:\n    - build/\n",
			localContent:  "tree:\n  exclude:\n    - build/\n    - '*.log'\n    - build/\n",
			expectExclude: []string{"build/", "*.log"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.ConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			localPath := filepath.Join(workingDir, utils.ConfigFileName)
			if testCase.localContent != "" {
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte("tree:\n  ignore_file: .explicitignore\n"), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if testCase.expectIgnoreFile != "" && loadedConfig.Tree.IgnoreFile != testCase.expectIgnoreFile {
				t.Fatalf("expected ignore file %s, got %s", testCase.expectIgnoreFile, loadedConfig.Tree.IgnoreFile)
			}
			if testCase.expectHidden == nil {
				if loadedConfig.Tree.IncludeHidden != nil {
					t.Fatalf("expected no include_hidden override")
				}
			} else if loadedConfig.Tree.IncludeHidden == nil || *loadedConfig.Tree.IncludeHidden != *testCase.expectHidden {
				t.Fatalf("unexpected include_hidden value")
			}
			if testCase.expectDirsOnly != nil {
				if loadedConfig.Tree.DirectoriesOnly == nil || *loadedConfig.Tree.DirectoriesOnly != *testCase.expectDirsOnly {
					t.Fatalf("unexpected dir_only value")
				}
			}
			if testCase.expectMaxDepth == nil {
				if loadedConfig.Tree.MaxDepth != nil {
					t.Fatalf("expected no max_depth override, got %d", *loadedConfig.Tree.MaxDepth)
				}
			} else if loadedConfig.Tree.MaxDepth == nil || *loadedConfig.Tree.MaxDepth != *testCase.expectMaxDepth {
				t.Fatalf("unexpected max_depth value")
			}
			if testCase.expectExclude != nil {
				if len(loadedConfig.Tree.Exclude) != len(testCase.expectExclude) {
					t.Fatalf("expected exclude %v, got %v", testCase.expectExclude, loadedConfig.Tree.Exclude)
				}
				for patternIndex, pattern := range testCase.expectExclude {
					if loadedConfig.Tree.Exclude[patternIndex] != pattern {
						t.Fatalf("expected exclude %v, got %v", testCase.expectExclude, loadedConfig.Tree.Exclude)
					}
				}
			}
			if testCase.expectCombineCopy != nil {
				if loadedConfig.Combine.Copy == nil || *loadedConfig.Combine.Copy != *testCase.expectCombineCopy {
					t.Fatalf("unexpected combine copy value")
				}
			}
			if testCase.expectTokens == nil {
				if loadedConfig.Combine.Tokens.Enabled != nil {
					t.Fatalf("expected no tokens override")
				}
			} else if loadedConfig.Combine.Tokens.Enabled == nil || *loadedConfig.Combine.Tokens.Enabled != *testCase.expectTokens {
				t.Fatalf("unexpected tokens enabled value")
			}
			if loadedConfig.Combine.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loadedConfig.Combine.Tokens.Model)
			}
		})
	}
}

func TestTreeCommandMergeKeepsBaseWhenOverrideEmpty(t *testing.T) {
	base := TreeCommandConfiguration{
		IgnoreFile: ".gitignore",
		MaxDepth:   intPointer(3),
		Exclude:    []string{"build/"},
	}
	merged := base.merge(TreeCommandConfiguration{})
	if merged.IgnoreFile != ".gitignore" {
		t.Fatalf("expected base ignore file to survive, got %s", merged.IgnoreFile)
	}
	if merged.MaxDepth == nil || *merged.MaxDepth != 3 {
		t.Fatalf("expected base max depth to survive")
	}
	if len(merged.Exclude) != 1 || merged.Exclude[0] != "build/" {
		t.Fatalf("expected base exclusions to survive, got %v", merged.Exclude)
	}
}

func TestCombineCommandMergeOverridesTokensIndependently(t *testing.T) {
	base := CombineCommandConfiguration{
		OutputDirectory: "out",
		Tokens:          TokenConfiguration{Model: "gpt-4o"},
	}
	override := CombineCommandConfiguration{
		Tokens: TokenConfiguration{Enabled: boolPointer(true)},
	}
	merged := base.merge(override)
	if merged.OutputDirectory != "out" {
		t.Fatalf("expected base output directory to survive, got %s", merged.OutputDirectory)
	}
	if merged.Tokens.Enabled == nil || !*merged.Tokens.Enabled {
		t.Fatalf("expected tokens enabled override to apply")
	}
	if merged.Tokens.Model != "gpt-4o" {
		t.Fatalf("expected base token model to survive, got %s", merged.Tokens.Model)
	}
}

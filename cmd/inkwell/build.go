package main

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cyberinsights/inkwell/internal/config"
)

// clientPackage is the WebAssembly entry point, relative to the module root
const clientPackage = "./cmd/client"

func newBuildCommand(flags *rootFlags) *cobra.Command {
	var output string
	var wasm bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the blog as static files",
		Long:  `Renders every page to HTML and copies static files into the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Build.OutputDir = output
			}
			return runBuild(cfg, flags, wasm, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dist", "Output directory")
	cmd.Flags().BoolVar(&wasm, "wasm", false, "Compile the WebAssembly client with the Go toolchain")

	return cmd
}

func runBuild(cfg *config.Config, flags *rootFlags, wasm bool, progress io.Writer) error {
	output := cfg.Build.OutputDir
	log.Printf("🚀 Building %s into %s...", cfg.Site.Title, output)

	// Clean output directory
	if err := os.RemoveAll(output); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clean output directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(output, "assets"), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if static := staticFS(cfg); static != nil {
		log.Printf("📁 Copying %s...", cfg.Server.StaticDir)
		if err := copyStaticFiles(static, output); err != nil {
			return fmt.Errorf("failed to copy static files: %w", err)
		}
	}

	if wasm {
		log.Println("🔨 Building WebAssembly client...")
		if err := buildClient(filepath.Join(output, "assets")); err != nil {
			return err
		}
	}

	// Pages are rendered once; caching would only hold memory
	cfg.Server.CacheTTL = 0
	s, err := newSite(cfg, flags.logger(), false)
	if err != nil {
		return err
	}
	written, err := s.Export(output, progress)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	log.Printf("📊 Build complete: %d files in %s", written, output)
	return nil
}

func copyStaticFiles(static fs.FS, output string) error {
	return fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(output, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return os.WriteFile(dest, data, 0644)
	})
}

// buildClient compiles cmd/client to outDir/client.wasm and copies the
// matching wasm_exec.js next to it.
func buildClient(outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	cmd := exec.Command("go", "build", "-trimpath", "-ldflags", "-s -w",
		"-o", filepath.Join(outDir, "client.wasm"), clientPackage)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("WASM build failed: %w\nOutput: %s", err, out)
	}

	log.Println("📄 Copying wasm_exec.js...")
	return copyWasmExec(outDir)
}

func copyWasmExec(outDir string) error {
	goroot, err := exec.Command("go", "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("failed to get GOROOT: %w", err)
	}
	root := strings.TrimSpace(string(goroot))

	// Go 1.24 moved the support file from misc/wasm to lib/wasm
	var content []byte
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		content, err = os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("failed to read wasm_exec.js: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, "wasm_exec.js"), content, 0644)
}

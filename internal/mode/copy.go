package mode

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// builtins maps builtin step names to factories that bind the expanded
// arguments into an in-process step function.
var builtins = map[string]func(args []string) (func(ctx context.Context) error, error){
	"copy_tree": newCopyTree,
}

func newCopyTree(args []string) (func(ctx context.Context) error, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("copy_tree wants [src dst], got %d args", len(args))
	}
	src, dst := args[0], args[1]
	return func(ctx context.Context) error {
		return copyTree(ctx, src, dst)
	}, nil
}

// copyTree recursively copies the directory src to dst, creating dst and
// any missing parents. Symlinks are not followed; regular files keep
// their permission bits.
func copyTree(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("copy tree: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copy tree: %s is not a directory", src)
	}
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

func openDiskv(basePath string) (*persistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// persistence stores one file per namespace under a directory per user.
type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Load(_ context.Context, userID string, ns Namespace) ([]byte, error) {
	if err := checkKey(userID, ns); err != nil {
		return nil, err
	}
	val, err := p.d.Read(toKey(userID, ns))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s/%s: %w", userID, ns, err)
	}
	return val, nil
}

func (p *persistence) Save(_ context.Context, userID string, ns Namespace, data []byte) error {
	if err := checkKey(userID, ns); err != nil {
		return err
	}
	if err := p.d.Write(toKey(userID, ns), data); err != nil {
		return fmt.Errorf("store: write %s/%s: %w", userID, ns, err)
	}
	return nil
}

func (p *persistence) Delete(_ context.Context, userID string, ns Namespace) error {
	if err := checkKey(userID, ns); err != nil {
		return err
	}
	if err := p.d.Erase(toKey(userID, ns)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s/%s: %w", userID, ns, err)
	}
	return nil
}

func (p *persistence) Namespaces(ctx context.Context, userID string) ([]Namespace, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("store: user id required")
	}
	prefix := toUserDir(userID) + "/"
	list := make([]Namespace, 0)
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		_, ns, ok := fromKey(key)
		if !ok {
			fmt.Fprintf(os.Stderr, "store: skipping unknown key %s\n", key)
			continue
		}
		list = append(list, ns)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list, nil
}

func (p *persistence) Close() error {
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}

// toKey makes `user/namespace` with the user id encoded as a safe directory
// name.
func toKey(userID string, ns Namespace) string {
	return fmt.Sprintf("%s/%s", toUserDir(userID), ns)
}

func fromKey(key string) (string, Namespace, bool) {
	dir, file, ok := strings.Cut(key, "/")
	if !ok {
		return "", "", false
	}
	userID, err := fromUserDir(dir)
	if err != nil {
		return "", "", false
	}
	ns := Namespace(file)
	if !ns.Valid() {
		return "", "", false
	}
	return userID, ns, true
}

func toUserDir(userID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(userID))
}

func fromUserDir(s string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

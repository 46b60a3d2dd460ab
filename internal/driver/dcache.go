package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"twig/internal/diag"
	"twig/internal/lexer"
	"twig/internal/source"
	"twig/internal/token"
)

// Current schema version - increment when CachePayload format changes
const tokenCacheSchemaVersion uint16 = 1

// Digest identifies a cached lexing result.
type Digest [sha256.Size]byte

// TokenCache хранит результаты лексера на диске, ключ строится по содержимому файла.
// Thread-safe for concurrent access.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is one cached lexer result.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Label       string
	Expr        bool
	ContentHash Digest

	Tokens      []token.Token
	Diagnostics []diag.Diagnostic
}

// OpenTokenCache opens (and creates) a cache directory. An empty dir picks
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenTokenCache(dir, app string) (*TokenCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// KeyFor derives the cache key of a file lexed in the given mode.
// Diagnostics carry the label, so it is part of the key.
func KeyFor(label string, content Digest, expr bool) Digest {
	h := sha256.New()
	var hdr [3]byte
	binary.BigEndian.PutUint16(hdr[:2], tokenCacheSchemaVersion)
	if expr {
		hdr[2] = 1
	}
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte(label))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *TokenCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *TokenCache) Put(key Digest, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	enc := msgpack.NewEncoder(f)
	enc.UseCompactInts(true)
	if err = enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// A payload written by another schema version counts as a miss.
func (c *TokenCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == tokenCacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// lookup is the read path used by lexFile; cache errors are treated as misses.
func (c *TokenCache) lookup(file *source.File, expr bool) (*CachePayload, bool) {
	if c == nil {
		return nil, false
	}
	var payload CachePayload
	ok, err := c.Get(KeyFor(file.Path, file.Hash, expr), &payload)
	if err != nil || !ok {
		return nil, false
	}
	if payload.ContentHash != file.Hash || payload.Label != file.Path || payload.Expr != expr {
		return nil, false
	}
	return &payload, true
}

func (c *TokenCache) store(file *source.File, expr bool, res lexer.Result) {
	if c == nil {
		return
	}
	// ошибка записи кэша не должна ронять лексинг
	_ = c.Put(KeyFor(file.Path, file.Hash, expr), &CachePayload{
		Schema:      tokenCacheSchemaVersion,
		Label:       file.Path,
		Expr:        expr,
		ContentHash: file.Hash,
		Tokens:      res.Tokens,
		Diagnostics: res.Diagnostics,
	})
}

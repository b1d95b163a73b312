package driver

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"lupin/internal/source"
	"lupin/internal/token"
)

// tokenCacheSchemaVersion растёт при каждом изменении формата TokenPayload
// или правил лексера.
const tokenCacheSchemaVersion uint16 = 2

// TokenCache хранит токены файлов на диске, ключ — SHA-256 содержимого.
// Thread-safe for concurrent access. A nil *TokenCache is a valid,
// always-missing cache.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// TokenPayload is the on-disk record for one file's token stream.
type TokenPayload struct {
	Schema uint16 `msgpack:"schema"`
	Path   string `msgpack:"path"`
	Hash   []byte `msgpack:"hash"`
	// MaxTokenLen is the lexer limit the stream was produced under.
	MaxTokenLen uint32        `msgpack:"max_token_len"`
	Tokens      []CachedToken `msgpack:"tokens"`
}

// CachedToken is the file-independent form of token.Token.
type CachedToken struct {
	Kind  uint8  `msgpack:"k"`
	Sym   uint8  `msgpack:"s,omitempty"`
	Lit   uint8  `msgpack:"l,omitempty"`
	Radix uint8  `msgpack:"r,omitempty"`
	Start uint32 `msgpack:"b"`
	End   uint32 `msgpack:"e"`
	Text  string `msgpack:"t,omitempty"`
}

// OpenTokenCache creates dir if needed and returns a cache rooted there.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

func (c *TokenCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *TokenCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *TokenCache) Put(key [32]byte, payload *TokenPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *TokenCache) Get(key [32]byte, out *TokenPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", hex.EncodeToString(key[:4]), err)
	}
	return true, nil
}

// DropAll removes every cached payload; the cache stays usable.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tokensDir := filepath.Join(c.dir, "tokens")
	// сначала переименуем, чтобы параллельный Get не увидел полуудалённый каталог
	old := tokensDir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(tokensDir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// Lookup returns the cached tokens of file lexed under maxTokenLen. A payload
// written by another schema, for other content, under another token length
// limit or with spans outside the file is a miss.
func (c *TokenCache) Lookup(file *source.File, maxTokenLen uint32) ([]token.Token, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	var payload TokenPayload
	ok, err := c.Get(file.Hash, &payload)
	if err != nil || !ok {
		return nil, false, err
	}
	if payload.Schema != tokenCacheSchemaVersion || !bytes.Equal(payload.Hash, file.Hash[:]) {
		return nil, false, nil
	}
	// поток без лимита может содержать токен, который лимит бы отверг
	if payload.MaxTokenLen != maxTokenLen {
		return nil, false, nil
	}
	toks, err := decodeTokens(file, payload.Tokens)
	if err != nil {
		return nil, false, err
	}
	return toks, true, nil
}

// Store caches toks, lexed under maxTokenLen, under the content hash of file.
func (c *TokenCache) Store(file *source.File, maxTokenLen uint32, toks []token.Token) error {
	if c == nil {
		return nil
	}
	cached, err := encodeTokens(toks)
	if err != nil {
		return err
	}
	return c.Put(file.Hash, &TokenPayload{
		Schema:      tokenCacheSchemaVersion,
		Path:        file.Path,
		Hash:        file.Hash[:],
		MaxTokenLen: maxTokenLen,
		Tokens:      cached,
	})
}

func encodeTokens(toks []token.Token) ([]CachedToken, error) {
	out := make([]CachedToken, len(toks))
	for i, t := range toks {
		ct := CachedToken{Kind: uint8(t.Kind), Start: t.Span.Start, End: t.Span.End}
		switch t.Kind {
		case token.Identifier:
			ct.Text = t.Text
		case token.Symbol:
			ct.Sym = uint8(t.Symbol())
		case token.Literal:
			lit := t.Literal()
			ct.Lit = uint8(lit.Kind)
			ct.Radix = uint8(lit.Radix)
			ct.Text = t.Text
		case token.EOF:
		default:
			return nil, fmt.Errorf("token %d: %s tokens are not cacheable", i, t.Kind)
		}
		out[i] = ct
	}
	return out, nil
}

func decodeTokens(file *source.File, cached []CachedToken) ([]token.Token, error) {
	if len(cached) == 0 {
		return nil, errors.New("empty token payload")
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, err
	}
	out := make([]token.Token, len(cached))
	for i, ct := range cached {
		if ct.Start > ct.End || ct.End > size {
			return nil, fmt.Errorf("token %d: span %d-%d outside file", i, ct.Start, ct.End)
		}
		sp := source.Span{File: file.ID, Start: ct.Start, End: ct.End}
		switch token.Kind(ct.Kind) {
		case token.Identifier:
			out[i] = token.NewIdent(sp, ct.Text)
		case token.Symbol:
			out[i] = token.NewSymbol(sp, token.Sym(ct.Sym))
		case token.Literal:
			out[i] = token.NewLiteral(sp, token.LiteralKind(ct.Lit), token.Radix(ct.Radix), ct.Text)
		case token.EOF:
			out[i] = token.NewEOF(file.ID, ct.Start)
		default:
			return nil, fmt.Errorf("token %d: unexpected kind %d", i, ct.Kind)
		}
	}
	if out[len(out)-1].Kind != token.EOF {
		return nil, errors.New("token payload does not end with EOF")
	}
	return out, nil
}

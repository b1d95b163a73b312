package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса

var builtinSeeds = []string{
	"",
	"i32 a = 3829",
	"i32 foobarfn :: (u32 a, i16 b)",
	"tyawesome ffffff :: ()",
	"i32 f :: (i32 a,)",
	"idontknow ok :: (&&)",
	"i32 foobar = (1 + (hello + (world)) + (((((woahhhh)))) + 567))",
	"f64 x = 1. + ._1 + 0b1_0 + 0xFF + \"s\\\"q\" + true",
	"i32 a = (((",
	"x :: (a b,,)",
	"\"unterminated",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.lp file under the repository testdata/.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lp" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

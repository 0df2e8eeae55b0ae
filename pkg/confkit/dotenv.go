package confkit

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads API_URL, DBMAX_API_URL, AUTH_KEY and friends from a
// .env file. The first call wins. Variables already present in the process
// environment are kept unless DOTENV_OVERLOAD=1.
//
// NO_DOTENV=1 disables loading, ENV_FILE points at an explicit file, and
// otherwise every .env from this package up to the module root is tried.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}

	load := godotenv.Load
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		load = godotenv.Overload
	}

	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = load(envFile)
		return
	}

	// the working directory first, so a deployed binary picks up ./.env
	_ = load(".env")

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return
	}
	for _, dir := range ancestors(filepath.Dir(file)) {
		_ = load(filepath.Join(dir, ".env"))
		if isModuleRoot(dir) {
			return
		}
	}
}

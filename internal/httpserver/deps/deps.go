package deps

import (
	"time"

	"github.com/MrSnakeDoc/bm/internal/bookmarks"
	"github.com/MrSnakeDoc/bm/internal/logger"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Manager        *bookmarks.Manager // link and resource operations
	RequestTimeout time.Duration      // per-request timeout, covers the page fetches of an add
}

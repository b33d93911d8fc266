package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt sql/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded default word list.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// MigrationsDir is the directory inside FS holding *.sql migrations.
const MigrationsDir = "sql"

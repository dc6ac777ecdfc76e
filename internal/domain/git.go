package domain

import "time"

type GitStatus struct {
	Branch         string
	HasUncommitted bool
	Ahead          int
	Behind         int
}

type Commit struct {
	SHA     string
	Message string
	Author  string
	Date    time.Time
}

type DiffStats struct {
	FilesChanged int
	Insertions   int
	Deletions    int
}

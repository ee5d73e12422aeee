package catalog

import "time"

// Image is the catalog's unit of truth. Albums are not rows of their own;
// they exist only as the grouping key carried here.
type Image struct {
	ID        int64     `db:"id"`
	Album     int64     `db:"album"`
	Starred   bool      `db:"starred"`
	Filepath  string    `db:"filepath"`
	Mime      string    `db:"mime"`
	Bytes     int64     `db:"bytes"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	CreatedAt time.Time `db:"created_at"`
}

// Content is a blob read back through the catalog.
type Content struct {
	Data        []byte
	ContentType string
}

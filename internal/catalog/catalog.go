package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/example/praline/internal/blob"
)

// ErrNotFound covers a missing record, or a missing starred record for an
// album that has none.
var ErrNotFound = errors.New("image not found")

// ErrWrongAlbum means the star target exists but belongs to another album.
var ErrWrongAlbum = errors.New("image belongs to a different album")

// ErrMissingBlob means a record exists but its file does not. This is
// catalog/store drift and is surfaced distinctly from ErrNotFound so
// operators can tell the two apart.
var ErrMissingBlob = errors.New("image file missing for existing record")

// ErrBlobCleanup means a record was deleted but removing its file failed.
// The logical delete has already succeeded; the orphaned file is left for an
// out-of-band sweep.
var ErrBlobCleanup = errors.New("image record deleted but file removal failed")

const imageColumns = "id, album, starred, filepath, mime, bytes, width, height, created_at"

// Catalog owns the image records and keeps them consistent with the blobs
// held by the Store. All star-flag bookkeeping happens here, inside database
// transactions; the blob store knows nothing about albums.
type Catalog struct {
	db    *sqlx.DB
	blobs *blob.Store
}

func New(db *sqlx.DB, blobs *blob.Store) *Catalog {
	return &Catalog{db: db, blobs: blobs}
}

func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// CreateImage allocates the next id, writes the blob under it, and commits
// the record. The row is inserted inside the transaction before the file
// write only to obtain the id; it stays invisible until commit, so no reader
// ever sees a record whose file is not on disk. On any failure after the
// blob is written the blob is removed again; if that removal fails too, both
// errors are reported.
func (c *Catalog) CreateImage(ctx context.Context, album int64, contentType string, r io.Reader, maxBytes int64) (*Image, error) {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO image (album, starred, filepath, mime) VALUES (?, FALSE, '', ?)",
		album, contentType,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	save, err := c.blobs.Save(ctx, id, contentType, r, maxBytes)
	if err != nil {
		return nil, err
	}

	var img Image
	commit := func() error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE image SET filepath = ?, bytes = ?, width = ?, height = ? WHERE id = ?",
			save.Ref, save.Bytes, save.Width, save.Height, id,
		); err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &img,
			"SELECT "+imageColumns+" FROM image WHERE id = ?", id); err != nil {
			return err
		}
		return tx.Commit()
	}
	if err := commit(); err != nil {
		if cleanupErr := c.blobs.Delete(save.Ref); cleanupErr != nil {
			return nil, errors.Join(err, fmt.Errorf("orphaned blob %s: %w", save.Ref, cleanupErr))
		}
		return nil, err
	}
	return &img, nil
}

// GetImage returns the stored bytes for a record. The record's declared
// content type wins over whatever the blob store would sniff.
func (c *Catalog) GetImage(ctx context.Context, id int64) (*Content, error) {
	img, err := c.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.readBlob(img)
}

// ListAlbum returns every record in the album, in id order. An album nobody
// has uploaded to is an empty list, not an error.
func (c *Catalog) ListAlbum(ctx context.Context, album int64) ([]Image, error) {
	images := []Image{}
	err := c.db.SelectContext(ctx, &images,
		"SELECT "+imageColumns+" FROM image WHERE album = ? ORDER BY id", album)
	if err != nil {
		return nil, err
	}
	return images, nil
}

// GetStarred returns the bytes of the album's starred image.
func (c *Catalog) GetStarred(ctx context.Context, album int64) (*Content, error) {
	var img Image
	err := c.db.GetContext(ctx, &img,
		"SELECT "+imageColumns+" FROM image WHERE album = ? AND starred = TRUE", album)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no starred image in album %d", ErrNotFound, album)
	}
	if err != nil {
		return nil, err
	}
	return c.readBlob(&img)
}

// SetStarred makes id the album's starred image, unstarring whichever record
// held the flag. Unset and set commit as one transaction, so no reader ever
// observes two starred records in an album; the unique index on
// starred_album backs that up at the schema level. Starring the
// already-starred image is a successful no-op.
func (c *Catalog) SetStarred(ctx context.Context, album, id int64) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock the album's rows in id order before touching anything.
	// Concurrent star calls against the same album serialize here rather
	// than deadlocking between the unset and set updates.
	var lockIDs []int64
	if err := tx.SelectContext(ctx, &lockIDs,
		"SELECT id FROM image WHERE album = ? ORDER BY id FOR UPDATE", album); err != nil {
		return err
	}

	var target Image
	err = tx.GetContext(ctx, &target,
		"SELECT "+imageColumns+" FROM image WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	if target.Album != album {
		return fmt.Errorf("%w: image %d is in album %d, not %d", ErrWrongAlbum, id, target.Album, album)
	}
	if target.Starred {
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE image SET starred = FALSE WHERE album = ? AND starred = TRUE", album); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE image SET starred = TRUE WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteImage removes the record, then the blob. The record goes first: a
// crash in between leaves an orphaned file (recoverable by a sweep) rather
// than a record pointing at nothing. A blob removal failure after the record
// is gone comes back as ErrBlobCleanup, which callers may treat as a warning
// since the logical delete already succeeded.
func (c *Catalog) DeleteImage(ctx context.Context, id int64) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var filepath string
	err = tx.GetContext(ctx, &filepath, "SELECT filepath FROM image WHERE id = ? FOR UPDATE", id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM image WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := c.blobs.Delete(filepath); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBlobCleanup, filepath, err)
	}
	return nil
}

func (c *Catalog) getByID(ctx context.Context, id int64) (*Image, error) {
	var img Image
	err := c.db.GetContext(ctx, &img,
		"SELECT "+imageColumns+" FROM image WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (c *Catalog) readBlob(img *Image) (*Content, error) {
	data, sniffed, err := c.blobs.Get(img.Filepath)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, fmt.Errorf("%w: id %d ref %s", ErrMissingBlob, img.ID, img.Filepath)
	}
	if err != nil {
		return nil, err
	}
	contentType := img.Mime
	if contentType == "" {
		contentType = sniffed
	}
	return &Content{Data: data, ContentType: contentType}, nil
}

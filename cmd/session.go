package cmd

import (
	"fmt"
	"log/slog"

	"lms"
	"lms/codec"
	"lms/filestore"
	"lms/person"
	"lms/personid"
	"lms/relationship"
	"lms/storage"

	"github.com/spf13/cobra"
)

// session is the registry loaded from the configured files.
type session struct {
	cfg Config
	log *slog.Logger
	db  *lms.Database
	reg *lms.Registry
}

func (a *app) open(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(a.v)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	stg, ok := storage.ByName[[]byte](cfg.Storage)
	if !ok {
		return nil, fmt.Errorf("invalid storage %s", cfg.Storage)
	}
	c, ok := codec.ByName[person.Metadata](cfg.Codec)
	if !ok {
		return nil, fmt.Errorf("invalid codec %s", cfg.Codec)
	}

	metas, err := filestore.Load(cfg.DBFile)
	if err != nil {
		return nil, err
	}
	links, err := filestore.LoadLinks(cfg.LinksFile)
	if err != nil {
		return nil, err
	}

	db := lms.NewDatabase(stg)
	ids := personid.NewGenerator(1, person.IDs(person.Persons(metas)))
	linkIDs := personid.NewAtomicGenerator(1, linkIDsOf(links))
	reg, err := lms.NewRegistry(&db, c, ids, lms.WithLogger(log), lms.WithLinkIDs(linkIDs))
	if err != nil {
		return nil, err
	}
	for _, m := range metas {
		if err := reg.Put(m); err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.DBFile, err)
		}
	}
	for _, l := range links {
		if err := reg.PutLink(l); err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.LinksFile, err)
		}
	}

	log.Debug("database loaded", "file", cfg.DBFile, "persons", len(metas), "relationships", len(links), "next id", ids.Peek())
	return &session{cfg: cfg, log: log, db: &db, reg: reg}, nil
}

// save writes every person and relationship back. No person left means no
// file.
func (s *session) save() error {
	all, err := s.reg.All()
	if err != nil {
		return err
	}
	links, err := s.reg.Links()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		s.log.Info("database empty, removing file", "file", s.cfg.DBFile)
		if err := filestore.Remove(s.cfg.DBFile); err != nil {
			return err
		}
	} else if err := filestore.Save(s.cfg.DBFile, all); err != nil {
		return err
	}
	if err := filestore.SaveLinks(s.cfg.LinksFile, links); err != nil {
		return err
	}
	s.log.Debug("database saved", "file", s.cfg.DBFile, "persons", len(all), "relationships", len(links))
	return nil
}

func linkIDsOf(links []relationship.Link) []personid.ID {
	ids := make([]personid.ID, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}
	return ids
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"biblioteca-backend/internal/models"
	"biblioteca-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrAlreadyInLibrary  = errors.New("el libro ya está en tu biblioteca")
	ErrAlreadyInWishlist = errors.New("el libro ya está en tu wishlist")
	ErrBookInLibrary     = errors.New("el libro ya está en tu biblioteca, no se puede agregar a la wishlist")
	ErrBookNotFound      = errors.New("el libro no existe")
)

// VolumeGetter trae un volumen puntual del catálogo externo (para completar
// metadatos al crear un libro). Best effort: si falla se sigue sin él.
type VolumeGetter interface {
	GetVolume(ctx context.Context, id string) (*models.VolumeMetadata, error)
}

type LibraryService struct {
	books    *repository.BookRepository
	library  *repository.MembershipRepository
	wishlist *repository.MembershipRepository
	catalog  VolumeGetter
}

func NewLibraryService(
	books *repository.BookRepository,
	library *repository.MembershipRepository,
	wishlist *repository.MembershipRepository,
	catalog VolumeGetter,
) *LibraryService {
	return &LibraryService{books: books, library: library, wishlist: wishlist, catalog: catalog}
}

// AddBookData son los datos mínimos que manda el cliente al agregar un libro
// (vienen del resultado de búsqueda que ya tiene en pantalla).
type AddBookData struct {
	GoogleID  string
	Title     string
	Authors   string
	Thumbnail string
	Language  string
	ISBN      string
}

func (d *AddBookData) validate() error {
	if d.GoogleID == "" || d.Title == "" || d.Authors == "" {
		return fmt.Errorf("faltan datos esenciales del libro (id, título, autores)")
	}
	return nil
}

// getOrCreateBook busca el libro en la colección "books"; si no está lo crea
// y trata de completar categorías/descripción desde el catálogo (el perfil de
// recomendaciones las necesita). Si ya existe, backfillea campos vacíos.
func (s *LibraryService) getOrCreateBook(ctx context.Context, data AddBookData) (*models.BookDoc, error) {
	existing, err := s.books.FindByGoogleID(ctx, data.GoogleID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		update := bson.M{}
		if existing.Language == "" && data.Language != "" {
			update["language"] = data.Language
		}
		if existing.Thumbnail == "" && data.Thumbnail != "" {
			update["thumbnail"] = data.Thumbnail
		}
		if existing.Author == "" && data.Authors != "" {
			update["author"] = data.Authors
		}
		if len(update) > 0 {
			update["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
			if err := s.books.UpdateByGoogleID(ctx, data.GoogleID, update); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	b := &models.BookDoc{
		GoogleID:  data.GoogleID,
		Title:     data.Title,
		Author:    data.Authors,
		Language:  data.Language,
		ISBN:      data.ISBN,
		Thumbnail: data.Thumbnail,
		Source:    "google",
		CreatedAt: now,
		UpdatedAt: now,
	}

	// completar metadatos desde el catálogo; sin esto el libro no aporta
	// categorías ni descripción al perfil
	if s.catalog != nil {
		if vol, err := s.catalog.GetVolume(ctx, data.GoogleID); err != nil {
			log.Printf("[library] no se pudo completar %s desde catálogo: %v", data.GoogleID, err)
		} else if vol != nil {
			if len(vol.Categories) > 0 {
				b.Categories = strings.Join(vol.Categories, ", ")
			}
			b.Description = vol.Description
			b.Publisher = vol.Publisher
			b.PublishedDate = vol.PublishedDate
			if b.Language == "" {
				b.Language = vol.Language
			}
			if b.ISBN == "" {
				b.ISBN = vol.ISBN
			}
		}
	}

	if err := s.books.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ================== BIBLIOTECA ==================

// AddToLibrary agrega el libro a la biblioteca. Si estaba en la wishlist se
// mueve (sale de la wishlist).
func (s *LibraryService) AddToLibrary(ctx context.Context, userID int, data AddBookData) (*models.BookDoc, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}

	b, err := s.getOrCreateBook(ctx, data)
	if err != nil {
		return nil, err
	}

	inLibrary, err := s.library.Exists(ctx, userID, b.GoogleID)
	if err != nil {
		return nil, err
	}
	if inLibrary {
		return nil, ErrAlreadyInLibrary
	}

	if err := s.library.Add(ctx, userID, b.GoogleID); err != nil {
		return nil, err
	}

	if removed, err := s.wishlist.Remove(ctx, userID, b.GoogleID); err != nil {
		log.Printf("[library] error sacando %s de wishlist: %v", b.GoogleID, err)
	} else if removed {
		log.Printf("[library] usuario %d movió %q de wishlist a biblioteca", userID, b.Title)
	}

	log.Printf("[library] usuario %d agregó %q", userID, b.Title)
	return b, nil
}

func (s *LibraryService) RemoveFromLibrary(ctx context.Context, userID int, googleID string) error {
	removed, err := s.library.Remove(ctx, userID, googleID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrBookNotFound
	}
	log.Printf("[library] usuario %d eliminó %s de su biblioteca", userID, googleID)
	return nil
}

func (s *LibraryService) ListLibrary(ctx context.Context, userID int) ([]models.BookDoc, error) {
	ids, err := s.library.ListGoogleIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.books.FindByGoogleIDs(ctx, ids)
}

// OwnedBooks implementa BookSource para el motor de recomendaciones: la
// biblioteca, nunca la wishlist.
func (s *LibraryService) OwnedBooks(ctx context.Context, userID int) ([]models.BookDoc, error) {
	return s.ListLibrary(ctx, userID)
}

// ================== WISHLIST ==================

// AddToWishlist agrega a la wishlist, salvo que el libro ya esté en la
// biblioteca (ya lo tiene, no tiene sentido desearlo).
func (s *LibraryService) AddToWishlist(ctx context.Context, userID int, data AddBookData) (*models.BookDoc, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}

	b, err := s.getOrCreateBook(ctx, data)
	if err != nil {
		return nil, err
	}

	inLibrary, err := s.library.Exists(ctx, userID, b.GoogleID)
	if err != nil {
		return nil, err
	}
	if inLibrary {
		return nil, ErrBookInLibrary
	}

	inWishlist, err := s.wishlist.Exists(ctx, userID, b.GoogleID)
	if err != nil {
		return nil, err
	}
	if inWishlist {
		return nil, ErrAlreadyInWishlist
	}

	if err := s.wishlist.Add(ctx, userID, b.GoogleID); err != nil {
		return nil, err
	}
	log.Printf("[wishlist] usuario %d agregó %q", userID, b.Title)
	return b, nil
}

func (s *LibraryService) RemoveFromWishlist(ctx context.Context, userID int, googleID string) error {
	removed, err := s.wishlist.Remove(ctx, userID, googleID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrBookNotFound
	}
	log.Printf("[wishlist] usuario %d eliminó %s de su wishlist", userID, googleID)
	return nil
}

func (s *LibraryService) ListWishlist(ctx context.Context, userID int) ([]models.BookDoc, error) {
	ids, err := s.wishlist.ListGoogleIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.books.FindByGoogleIDs(ctx, ids)
}

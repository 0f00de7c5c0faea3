package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

const collectionPortfolios = "portfolios"

type PortfolioRepository struct {
	col *mongo.Collection
}

func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{col: db.Collection(collectionPortfolios)}
}

type portfolioDoc struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	UserID     string              `bson:"user_id"`
	Name       string              `bson:"name"`
	Title      string              `bson:"title"`
	Bio        string              `bson:"bio"`
	Email      string              `bson:"email"`
	Phone      string              `bson:"phone"`
	Location   string              `bson:"location"`
	Website    string              `bson:"website"`
	LinkedIn   string              `bson:"linkedin"`
	GitHub     string              `bson:"github"`
	Experience []domain.Experience `bson:"experience"`
	Education  []domain.Education  `bson:"education"`
	Projects   []domain.Project    `bson:"projects"`
	Skills     []string            `bson:"skills"`
	Template   string              `bson:"template"`
	IsPublic   bool                `bson:"is_public"`
	CreatedAt  time.Time           `bson:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at"`
}

func (r *PortfolioRepository) Create(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toPortfolioDoc(p))
	if err != nil {
		return nil, fmt.Errorf("insert portfolio: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert portfolio: unexpected id type %T", res.InsertedID)
	}

	created := *p
	created.ID = oid.Hex()
	return &created, nil
}

func (r *PortfolioRepository) FindByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPortfolioNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc portfolioDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("find portfolio: %w", err)
	}
	return fromPortfolioDoc(&doc), nil
}

// FindByUserID returns the user's portfolios in creation order.
func (r *PortfolioRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	defer cur.Close(ctx)

	return decodePortfolios(ctx, cur)
}

func (r *PortfolioRepository) Update(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrPortfolioNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toPortfolioDoc(p))
	if err != nil {
		return nil, fmt.Errorf("update portfolio: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPortfolioNotFound
	}
	return p, nil
}

func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPortfolioNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete portfolio: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}

// ListPublic returns public portfolios, newest first. When filter.Query is
// set, name/title/bio/skills are matched case-insensitively.
func (r *PortfolioRepository) ListPublic(ctx context.Context, filter ports.PublicFilter) ([]*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"is_public": true}
	if filter.Query != "" {
		rx := primitive.Regex{Pattern: filter.Query, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"title": rx},
			bson.M{"bio": rx},
			bson.M{"skills": rx},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list public portfolios: %w", err)
	}
	defer cur.Close(ctx)

	return decodePortfolios(ctx, cur)
}

// EnsureIndexes creates the indexes backing the list and public queries.
func (r *PortfolioRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodePortfolios(ctx context.Context, cur *mongo.Cursor) ([]*domain.Portfolio, error) {
	out := make([]*domain.Portfolio, 0)
	for cur.Next(ctx) {
		var doc portfolioDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode portfolio: %w", err)
		}
		out = append(out, fromPortfolioDoc(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("portfolio cursor: %w", err)
	}
	return out, nil
}

func toPortfolioDoc(p *domain.Portfolio) *portfolioDoc {
	doc := &portfolioDoc{
		UserID:     p.UserID,
		Name:       p.Name,
		Title:      p.Title,
		Bio:        p.Bio,
		Email:      p.Email,
		Phone:      p.Phone,
		Location:   p.Location,
		Website:    p.Website,
		LinkedIn:   p.LinkedIn,
		GitHub:     p.GitHub,
		Experience: p.Experience,
		Education:  p.Education,
		Projects:   p.Projects,
		Skills:     p.Skills,
		Template:   p.Template,
		IsPublic:   p.IsPublic,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(p.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func fromPortfolioDoc(doc *portfolioDoc) *domain.Portfolio {
	return &domain.Portfolio{
		ID:         doc.ID.Hex(),
		UserID:     doc.UserID,
		Name:       doc.Name,
		Title:      doc.Title,
		Bio:        doc.Bio,
		Email:      doc.Email,
		Phone:      doc.Phone,
		Location:   doc.Location,
		Website:    doc.Website,
		LinkedIn:   doc.LinkedIn,
		GitHub:     doc.GitHub,
		Experience: doc.Experience,
		Education:  doc.Education,
		Projects:   doc.Projects,
		Skills:     doc.Skills,
		Template:   doc.Template,
		IsPublic:   doc.IsPublic,
		CreatedAt:  doc.CreatedAt.UTC(),
		UpdatedAt:  doc.UpdatedAt.UTC(),
	}
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

const vacationColumns = `
	v.id,
	v.country_id,
	v.destination,
	v.description,
	v.start_date,
	v.end_date,
	v.price,
	v.image_url,
	v.created_at,
	v.updated_at,
	c.name AS country_name,
	c.code AS country_code`

type VacationRepository struct {
	db *sqlx.DB
}

func NewVacationRepo(db *sqlx.DB) *VacationRepository {
	return &VacationRepository{db: db}
}

func (r *VacationRepository) Create(ctx context.Context, v *domain.Vacation) (*domain.Vacation, error) {
	// The insert and the country join run as one statement, so the FK is
	// checked atomically with the write: a concurrently removed country can
	// never leave a dangling reference.
	const query = `
		WITH inserted AS (
			INSERT INTO vacation (country_id, destination, description, start_date, end_date, price, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT
			v.id, v.country_id, v.destination, v.description, v.start_date, v.end_date,
			v.price, v.image_url, v.created_at, v.updated_at,
			c.name AS country_name, c.code AS country_code
		FROM inserted v
		JOIN country c ON c.id = v.country_id
	`
	var created domain.Vacation
	err := r.db.GetContext(ctx, &created, query,
		v.CountryID, v.Destination, v.Description, v.StartDate, v.EndDate, v.Price, v.ImageURL)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *VacationRepository) Update(ctx context.Context, v *domain.Vacation) (*domain.Vacation, error) {
	const query = `
		WITH updated AS (
			UPDATE vacation
			SET country_id = $2,
			    destination = $3,
			    description = $4,
			    start_date = $5,
			    end_date = $6,
			    price = $7,
			    image_url = $8,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT
			v.id, v.country_id, v.destination, v.description, v.start_date, v.end_date,
			v.price, v.image_url, v.created_at, v.updated_at,
			c.name AS country_name, c.code AS country_code
		FROM updated v
		JOIN country c ON c.id = v.country_id
	`
	var updated domain.Vacation
	err := r.db.GetContext(ctx, &updated, query,
		v.ID, v.CountryID, v.Destination, v.Description, v.StartDate, v.EndDate, v.Price, v.ImageURL)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteIfUnliked removes the vacation in a single atomic statement that
// refuses to delete while any like references it.
func (r *VacationRepository) DeleteIfUnliked(ctx context.Context, id uuid.UUID) (bool, bool, error) {
	const query = `
		WITH liked AS (
			SELECT EXISTS(SELECT 1 FROM vacation_like WHERE vacation_id = $1) AS has_likes
		),
		deleted AS (
			DELETE FROM vacation v
			USING liked
			WHERE v.id = $1 AND NOT liked.has_likes
			RETURNING v.id
		)
		SELECT
			EXISTS(SELECT 1 FROM deleted) AS deleted,
			(SELECT has_likes FROM liked) AS had_likes
	`
	var result struct {
		Deleted  bool `db:"deleted"`
		HadLikes bool `db:"had_likes"`
	}
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return false, false, err
	}
	return result.Deleted, result.HadLikes, nil
}

func (r *VacationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Vacation, error) {
	query := `
		SELECT` + vacationColumns + `
		FROM vacation v
		JOIN country c ON c.id = v.country_id
		WHERE v.id = $1
	`
	var vacation domain.Vacation
	if err := r.db.GetContext(ctx, &vacation, query, id); err != nil {
		return nil, err
	}
	return &vacation, nil
}

func (r *VacationRepository) List(ctx context.Context, filter domain.VacationListFilter, limit, offset int) ([]domain.VacationListItem, error) {
	var builder strings.Builder
	builder.WriteString(`
		SELECT` + vacationColumns + `,
			COUNT(l.id)::bigint AS like_count
		FROM vacation v
		JOIN country c ON c.id = v.country_id
		LEFT JOIN vacation_like l ON l.vacation_id = v.id
		WHERE 1 = 1
	`)

	params := make([]any, 0, 8)
	appendFilter(&builder, &params, filter)

	builder.WriteString("\tGROUP BY v.id, c.id\n")
	builder.WriteString(fmt.Sprintf("\tORDER BY %s, v.id ASC\n", orderClause(filter.Sort)))

	builder.WriteString(fmt.Sprintf("\tLIMIT $%d OFFSET $%d\n", len(params)+1, len(params)+2))
	params = append(params, limit, offset)

	items := make([]domain.VacationListItem, 0)
	if err := r.db.SelectContext(ctx, &items, builder.String(), params...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *VacationRepository) Count(ctx context.Context, filter domain.VacationListFilter) (int64, error) {
	var builder strings.Builder
	builder.WriteString(`
		SELECT COUNT(*)
		FROM vacation v
		WHERE 1 = 1
	`)

	params := make([]any, 0, 5)
	appendFilter(&builder, &params, filter)

	var count int64
	if err := r.db.GetContext(ctx, &count, builder.String(), params...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VacationRepository) Popular(ctx context.Context, limit int) ([]domain.VacationListItem, error) {
	query := `
		SELECT` + vacationColumns + `,
			COUNT(l.id)::bigint AS like_count
		FROM vacation v
		JOIN country c ON c.id = v.country_id
		LEFT JOIN vacation_like l ON l.vacation_id = v.id
		GROUP BY v.id, c.id
		ORDER BY like_count DESC, v.start_date ASC, v.id ASC
		LIMIT $1
	`
	items := make([]domain.VacationListItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *VacationRepository) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*domain.Vacation, error) {
	const query = `
		WITH updated AS (
			UPDATE vacation
			SET image_url = $2,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT
			v.id, v.country_id, v.destination, v.description, v.start_date, v.end_date,
			v.price, v.image_url, v.created_at, v.updated_at,
			c.name AS country_name, c.code AS country_code
		FROM updated v
		JOIN country c ON c.id = v.country_id
	`
	var vacation domain.Vacation
	if err := r.db.GetContext(ctx, &vacation, query, id, imageURL); err != nil {
		return nil, err
	}
	return &vacation, nil
}

func appendFilter(builder *strings.Builder, params *[]any, filter domain.VacationListFilter) {
	if filter.CountryID != nil {
		builder.WriteString(fmt.Sprintf("\tAND v.country_id = $%d\n", len(*params)+1))
		*params = append(*params, *filter.CountryID)
	}
	if filter.StartFrom != nil {
		builder.WriteString(fmt.Sprintf("\tAND v.start_date >= $%d\n", len(*params)+1))
		*params = append(*params, *filter.StartFrom)
	}
	if filter.StartTo != nil {
		builder.WriteString(fmt.Sprintf("\tAND v.start_date <= $%d\n", len(*params)+1))
		*params = append(*params, *filter.StartTo)
	}
	if filter.MinPrice != nil {
		builder.WriteString(fmt.Sprintf("\tAND v.price >= $%d\n", len(*params)+1))
		*params = append(*params, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		builder.WriteString(fmt.Sprintf("\tAND v.price <= $%d\n", len(*params)+1))
		*params = append(*params, *filter.MaxPrice)
	}
	if filter.Query != nil {
		n := len(*params) + 1
		builder.WriteString(fmt.Sprintf("\tAND (v.destination ILIKE $%d OR v.description ILIKE $%d)\n", n, n))
		*params = append(*params, "%"+escapeLikePattern(*filter.Query)+"%")
	}
}

// escapeLikePattern neutralizes LIKE metacharacters so caller text
// matches literally.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// Sort columns are resolved from a closed map; caller input never reaches
// the SQL text.
var vacationSortColumns = map[domain.VacationSortField]string{
	domain.VacationSortStartDate:   "v.start_date",
	domain.VacationSortPrice:       "v.price",
	domain.VacationSortDestination: "v.destination",
	domain.VacationSortCreatedAt:   "v.created_at",
}

func orderClause(sort domain.VacationSort) string {
	column, ok := vacationSortColumns[sort.Field]
	if !ok {
		column = "v.start_date"
	}
	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}
	return column + " " + direction
}

var _ ports.VacationRepository = (*VacationRepository)(nil)

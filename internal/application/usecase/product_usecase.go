package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
	"github.com/jhoicas/verduras-pro/pkg/logger"
	"github.com/jhoicas/verduras-pro/pkg/textsearch"
)

// DefaultCatalogue productos con los que arranca una verdulería nueva (costo por kg).
var DefaultCatalogue = []struct {
	Name string
	Cost string
}{
	{"Tomates", "2.00"},
	{"Papas", "1.50"},
	{"Lechugas", "1.80"},
	{"Zanahorias", "1.20"},
	{"Cebollas", "1.40"},
	{"Chiles", "3.00"},
	{"Calabazas", "1.60"},
	{"Pimientos", "4.50"},
	{"Espinacas", "2.50"},
}

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, log: log.Named("catalogo"), now: time.Now}
}

// Create agrega un producto. El nombre es único sin distinguir mayúsculas.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if in.AvgCost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitKg
	}
	if !entity.ValidUnit(unit) {
		return nil, fmt.Errorf("%w: unidad %q no soportada", domain.ErrInvalidInput, unit)
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Category:     strings.TrimSpace(in.Category),
		Unit:         unit,
		AvgCost:      in.AvgCost,
		AvgSalePrice: decimal.Zero,
		Stock:        decimal.Zero,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("nombre", product.Name).Msg("producto agregado")
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista el catálogo ordenado por nombre, con búsqueda sin acentos y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]*entity.Product, 0, len(all))
	for _, p := range all {
		if in.OnlyActive && !p.Active {
			continue
		}
		if !textsearch.Contains(p.Name, in.Search) && !textsearch.Contains(p.Category, in.Search) {
			continue
		}
		filtered = append(filtered, p)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return textsearch.Fold(filtered[i].Name) < textsearch.Fold(filtered[j].Name)
	})

	total := len(filtered)
	start := min(in.Offset, total)
	end := min(start+in.Limit, total)
	items := make([]dto.ProductResponse, 0, end-start)
	for _, p := range filtered[start:end] {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Update edita nombre, categoría, unidad, costo o estado. (nil, nil) si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
		}
		if !textsearch.Equal(name, product.Name) {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			return nil, fmt.Errorf("%w: unidad %q no soportada", domain.ErrInvalidInput, *in.Unit)
		}
		product.Unit = *in.Unit
	}
	if in.AvgCost != nil {
		if in.AvgCost.IsNegative() {
			return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
		}
		product.AvgCost = *in.AvgCost
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete elimina un producto. Las compras y ventas conservan el nombre copiado.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Str("nombre", product.Name).Msg("producto eliminado")
	return nil
}

// Reset borra todo el catálogo.
func (uc *ProductUseCase) Reset(ctx context.Context) error {
	if err := uc.repo.DeleteAll(ctx); err != nil {
		return err
	}
	uc.log.Warn().Msg("catálogo borrado por completo")
	return nil
}

// SeedDefaults agrega los productos de DefaultCatalogue que aún no existan.
func (uc *ProductUseCase) SeedDefaults(ctx context.Context) (*dto.SeedResponse, error) {
	out := &dto.SeedResponse{Created: []string{}, Skipped: []string{}}
	for _, item := range DefaultCatalogue {
		_, err := uc.Create(ctx, dto.CreateProductRequest{
			Name:    item.Name,
			Unit:    entity.UnitKg,
			AvgCost: decimal.RequireFromString(item.Cost),
		})
		switch {
		case err == nil:
			out.Created = append(out.Created, item.Name)
		case err == domain.ErrDuplicate:
			out.Skipped = append(out.Skipped, item.Name)
		default:
			return nil, fmt.Errorf("seed %s: %w", item.Name, err)
		}
	}
	return out, nil
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Unit:           p.Unit,
		AvgCost:        p.AvgCost,
		AvgSalePrice:   p.AvgSalePrice,
		Stock:          p.Stock,
		InventoryValue: p.InventoryValue(),
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// QueryUseCase lecturas de ventas y reportes. Todo listado compone el Scope
// del principal (primero, nunca anulable) con los filtros del caller.
type QueryUseCase struct {
	saleRepo   repository.SaleRepository
	reportRepo repository.ReportRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(saleRepo repository.SaleRepository, reportRepo repository.ReportRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo, reportRepo: reportRepo}
}

// ListSales listado con scope por rol: SELLER sus ventas, MANAGER su
// tienda, ADMIN todas.
func (uc *QueryUseCase) ListSales(ctx context.Context, p entity.Principal, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	scope, err := authz.SaleScope(p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()
	aggs, err := uc.saleRepo.List(scope, repository.SaleFilter{
		From:   in.From,
		To:     in.To,
		Limit:  in.Limit,
		Offset: in.Offset,
	}, false)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{
		Sales: make([]dto.SaleResponse, 0, len(aggs)),
		Page:  in.PageRequest,
	}
	for _, agg := range aggs {
		resp.Sales = append(resp.Sales, *aggregateToResponse(agg))
	}
	return resp, nil
}

// GetSale lee una venta por id. Un id inexistente es NOT_FOUND; una venta
// fuera del alcance del principal es FORBIDDEN sin revelar su contenido.
func (uc *QueryUseCase) GetSale(ctx context.Context, p entity.Principal, id string) (*dto.SaleResponse, error) {
	agg, err := uc.saleRepo.GetAggregate(id)
	if err != nil {
		return nil, err
	}
	if agg == nil || agg.Sale.Deleted {
		return nil, domain.ErrNotFound
	}
	if err := authz.CanViewSale(p, &agg.Sale); err != nil {
		return nil, err
	}
	return aggregateToResponse(agg), nil
}

// reportRange aplica por defecto los últimos 30 días.
func reportRange(in dto.ReportRequest) (time.Time, time.Time) {
	to := time.Now()
	if in.To != nil {
		to = *in.To
	}
	from := to.AddDate(0, 0, -30)
	if in.From != nil {
		from = *in.From
	}
	return from, to
}

// SalesSummary totales y ticket promedio dentro del scope.
func (uc *QueryUseCase) SalesSummary(ctx context.Context, p entity.Principal, in dto.ReportRequest) (*dto.SalesSummaryResponse, error) {
	scope, err := authz.SaleScope(p)
	if err != nil {
		return nil, err
	}
	from, to := reportRange(in)
	sum, err := uc.reportRepo.SalesSummary(ctx, scope, from, to)
	if err != nil {
		return nil, err
	}
	if sum == nil {
		return &dto.SalesSummaryResponse{GrossTotal: decimal.Zero, AverageTicket: decimal.Zero}, nil
	}
	return &dto.SalesSummaryResponse{
		SaleCount:     sum.SaleCount,
		GrossTotal:    sum.GrossTotal,
		AverageTicket: sum.AverageTicket,
	}, nil
}

// SalesByDay rollup por día dentro del scope.
func (uc *QueryUseCase) SalesByDay(ctx context.Context, p entity.Principal, in dto.ReportRequest) ([]dto.DailySalesResponse, error) {
	scope, err := authz.SaleScope(p)
	if err != nil {
		return nil, err
	}
	from, to := reportRange(in)
	rows, err := uc.reportRepo.SalesByDay(ctx, scope, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailySalesResponse{
			Day:        r.Day.Format("2006-01-02"),
			SaleCount:  r.SaleCount,
			GrossTotal: r.GrossTotal,
		})
	}
	return out, nil
}

// SalesBySeller rollup por vendedor dentro del scope.
func (uc *QueryUseCase) SalesBySeller(ctx context.Context, p entity.Principal, in dto.ReportRequest) ([]dto.SellerSalesResponse, error) {
	scope, err := authz.SaleScope(p)
	if err != nil {
		return nil, err
	}
	from, to := reportRange(in)
	rows, err := uc.reportRepo.SalesBySeller(ctx, scope, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SellerSalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SellerSalesResponse{
			SellerID:   r.SellerID,
			SellerName: r.SellerName,
			SaleCount:  r.SaleCount,
			GrossTotal: r.GrossTotal,
		})
	}
	return out, nil
}

// SalesByPaymentMethod rollup por método de pago dentro del scope.
func (uc *QueryUseCase) SalesByPaymentMethod(ctx context.Context, p entity.Principal, in dto.ReportRequest) ([]dto.PaymentMethodSalesResponse, error) {
	scope, err := authz.SaleScope(p)
	if err != nil {
		return nil, err
	}
	from, to := reportRange(in)
	rows, err := uc.reportRepo.SalesByPaymentMethod(ctx, scope, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodSalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PaymentMethodSalesResponse{
			Method:     r.Method,
			SaleCount:  r.SaleCount,
			GrossTotal: r.GrossTotal,
		})
	}
	return out, nil
}

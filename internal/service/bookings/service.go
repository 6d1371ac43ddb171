package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotReservation/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

// Service сервис просмотра бронирований
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	zone        civiltime.Zone
	pageSize    int
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	zone civiltime.Zone,
	pageSize int,
	logger Logger,
) *Service {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		zone:        zone,
		pageSize:    pageSize,
		logger:      logger,
	}
}

// PageSize размер страницы
func (s *Service) PageSize() int {
	return s.pageSize
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingViewResponse, error) {
	view, err := s.bookingRepo.GetViewByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingView(*view)
	return &resp, nil
}

// Query возвращает страницу бронирований по фильтру: сначала новые,
// при равном времени создания - по ID. Счётчик и страница читаются из
// одного снимка, поэтому totalCount согласован с items.
func (s *Service) Query(ctx context.Context, req *models.QueryRequest) (*models.BookingsPageResponse, error) {
	filter, page, err := s.toDomain(req)
	if err != nil {
		s.logger.Warn("Query: validation failed: %v", err)
		return nil, err
	}

	result := domain.BookingsPage{
		Items:    make([]domain.BookingView, 0),
		Page:     page.Number,
		PageSize: page.Size,
	}

	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		total, err := s.bookingRepo.CountViews(txCtx, filter)
		if err != nil {
			return err
		}
		result.TotalCount = total

		// Страница за пределами выборки - пустая, с правильным totalCount
		if page.Beyond(total) {
			return nil
		}

		items, err := s.bookingRepo.ListViews(txCtx, filter, page.Size, page.Offset())
		if err != nil {
			return err
		}
		result.Items = items
		return nil
	})
	if err != nil {
		s.logger.Error("Query: repository error: %v", err)
		return nil, fmt.Errorf("%w: Query - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Query: page=%d, items=%d, total=%d", result.Page, len(result.Items), result.TotalCount)
	return models.FromDomainBookingsPage(result), nil
}

func (s *Service) toDomain(req *models.QueryRequest) (domain.BookingsFilter, domain.Page, error) {
	var filter domain.BookingsFilter

	if req.Page < 0 {
		return filter, domain.Page{}, domain.NewFieldError("page", "page must be 1 or greater")
	}
	page := domain.Page{Number: req.Page, Size: s.pageSize}
	if page.Number == 0 {
		page.Number = 1
	}

	filter.ServiceName = nonEmpty(req.ServiceName)
	filter.SearchText = nonEmpty(req.SearchText)

	if v := nonEmpty(req.DateFrom); v != nil {
		from, err := s.zone.ParseDate(*v)
		if err != nil {
			return filter, page, domain.NewFieldError("dateFrom", "dateFrom must be YYYY-MM-DD")
		}
		filter.StartFrom = &from
	}

	if v := nonEmpty(req.DateTo); v != nil {
		day, err := s.zone.ParseDate(*v)
		if err != nil {
			return filter, page, domain.NewFieldError("dateTo", "dateTo must be YYYY-MM-DD")
		}
		to := s.zone.DayEnd(day)
		filter.StartTo = &to
	}

	if filter.StartFrom != nil && filter.StartTo != nil && filter.StartFrom.After(*filter.StartTo) {
		return filter, page, domain.NewFieldError("dateTo", "dateTo must not be before dateFrom")
	}

	return filter, page, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

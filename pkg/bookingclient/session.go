package bookingclient

import (
	"context"
	"errors"
	"sync"

	"github.com/m04kA/SMC-SlotReservation/pkg/seqguard"
)

// API операции сервера, которые нужны сессии
type API interface {
	ListServices(ctx context.Context) ([]Service, error)
	ListOpenSlots(ctx context.Context, serviceID string) (*OpenSlots, error)
	Reserve(ctx context.Context, req ReserveRequest) (*Booking, error)
}

// Selection текущий выбор пользователя
type Selection struct {
	ServiceID string
	DateKey   string
	SlotID    string
}

// Customer данные клиента для бронирования
type Customer struct {
	CompanyName string
	ContactName string
	Phone       string
}

// Session состояние экрана бронирования одного пользователя.
// Выбор сбрасывается при смене зависимого выбора: услуга -> дата -> слот.
// Перезагрузка слотов применяется только для последнего запроса.
type Session struct {
	api API
	log Logger

	mu          sync.Mutex
	services    []Service
	servicesErr error
	slots       *OpenSlots
	slotsErr    error
	selection   Selection

	slotsGuard seqguard.Guard
}

func NewSession(api API, log Logger) *Session {
	return &Session{
		api:      api,
		log:      log,
		services: []Service{},
		slots:    &OpenSlots{Slots: []Slot{}, Days: []Day{}},
	}
}

// LoadServices загружает каталог. При ошибке список пустой.
func (s *Session) LoadServices(ctx context.Context) error {
	services, err := s.api.ListServices(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.Warn("LoadServices: %v", err)
		s.services = []Service{}
		s.servicesErr = err
		return err
	}
	s.services = services
	s.servicesErr = nil
	return nil
}

// Services каталог и ошибка последней загрузки
func (s *Session) Services() ([]Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Service(nil), s.services...), s.servicesErr
}

// SelectService выбирает услугу, сбрасывает дату и слот и перечитывает слоты
func (s *Session) SelectService(ctx context.Context, serviceID string) error {
	s.mu.Lock()
	s.selection = Selection{ServiceID: serviceID}
	s.slots = &OpenSlots{ServiceID: serviceID, Slots: []Slot{}, Days: []Day{}}
	s.slotsErr = nil
	s.mu.Unlock()

	return s.ReloadSlots(ctx)
}

// ReloadSlots перечитывает слоты выбранной услуги. Если за время запроса
// был запущен более новый, результат отбрасывается и возвращается ErrSuperseded.
func (s *Session) ReloadSlots(ctx context.Context) error {
	token := s.slotsGuard.Next()

	s.mu.Lock()
	serviceID := s.selection.ServiceID
	s.mu.Unlock()

	if serviceID == "" {
		return &FieldError{Field: "serviceId", Message: "service is not selected"}
	}

	slots, err := s.api.ListOpenSlots(ctx, serviceID)

	applied := s.slotsGuard.Apply(token, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err != nil {
			s.slots = &OpenSlots{ServiceID: serviceID, Slots: []Slot{}, Days: []Day{}}
			s.slotsErr = err
		} else {
			s.slots = slots
			s.slotsErr = nil
		}
		s.dropMissingSelection()
	})
	if !applied {
		s.log.Info("ReloadSlots: stale result for service=%s discarded", serviceID)
		return ErrSuperseded
	}
	if err != nil {
		s.log.Warn("ReloadSlots: service=%s: %v", serviceID, err)
	}
	return err
}

// dropMissingSelection сбрасывает дату и слот, которых больше нет в списке
func (s *Session) dropMissingSelection() {
	if s.selection.DateKey == "" {
		return
	}
	day, ok := findDay(s.slots.Days, s.selection.DateKey)
	if !ok {
		s.selection.DateKey = ""
		s.selection.SlotID = ""
		return
	}
	if s.selection.SlotID != "" && !hasSlot(day.Slots, s.selection.SlotID) {
		s.selection.SlotID = ""
	}
}

// Slots последние применённые слоты и ошибка загрузки
func (s *Session) Slots() (OpenSlots, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.slots, s.slotsErr
}

// SelectDate выбирает дату из загруженных и сбрасывает слот
func (s *Session) SelectDate(dateKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findDay(s.slots.Days, dateKey); !ok {
		return &FieldError{Field: "date", Message: "no open slots on this date"}
	}
	s.selection.DateKey = dateKey
	s.selection.SlotID = ""
	return nil
}

// SlotsForSelectedDate слоты выбранной даты
func (s *Session) SlotsForSelectedDate() []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := findDay(s.slots.Days, s.selection.DateKey)
	if !ok {
		return []Slot{}
	}
	return append([]Slot(nil), day.Slots...)
}

// SelectSlot выбирает слот выбранной даты
func (s *Session) SelectSlot(slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := findDay(s.slots.Days, s.selection.DateKey)
	if !ok {
		return &FieldError{Field: "date", Message: "date is not selected"}
	}
	if !hasSlot(day.Slots, slotID) {
		return &FieldError{Field: "timeSlotId", Message: "slot is not open on the selected date"}
	}
	s.selection.SlotID = slotID
	return nil
}

// Selection текущий выбор
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Reserve бронирует выбранный слот. После успеха или конфликта слот
// сбрасывается и список слотов перечитывается.
func (s *Session) Reserve(ctx context.Context, customer Customer) (*Booking, error) {
	s.mu.Lock()
	sel := s.selection
	s.mu.Unlock()

	if sel.ServiceID == "" {
		return nil, &FieldError{Field: "serviceId", Message: "service is not selected"}
	}
	if sel.SlotID == "" {
		return nil, &FieldError{Field: "timeSlotId", Message: "slot is not selected"}
	}

	booking, err := s.api.Reserve(ctx, ReserveRequest{
		ServiceID:   sel.ServiceID,
		TimeSlotID:  sel.SlotID,
		CompanyName: customer.CompanyName,
		ContactName: customer.ContactName,
		Phone:       customer.Phone,
	})
	if err != nil && !errors.Is(err, ErrConflict) {
		return nil, err
	}

	s.mu.Lock()
	if s.selection.SlotID == sel.SlotID {
		s.selection.SlotID = ""
	}
	s.mu.Unlock()

	if reloadErr := s.ReloadSlots(ctx); reloadErr != nil && !errors.Is(reloadErr, ErrSuperseded) {
		s.log.Warn("Reserve: reload after reservation failed: %v", reloadErr)
	}

	if err != nil {
		s.log.Warn("Reserve: slot=%s taken by another client", sel.SlotID)
		return nil, err
	}
	return booking, nil
}

func findDay(days []Day, key string) (Day, bool) {
	if key == "" {
		return Day{}, false
	}
	for _, d := range days {
		if d.DateKey == key {
			return d, true
		}
	}
	return Day{}, false
}

func hasSlot(slots []Slot, id string) bool {
	for _, slot := range slots {
		if slot.ID == id {
			return true
		}
	}
	return false
}

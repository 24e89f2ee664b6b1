package scheduling

import (
	"sync"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

// fakeStore is an in-memory Store. The conditional swap-request methods mirror
// the database's guarded updates, including their locking, so race-oriented
// tests exercise the same semantics as the real repository.
type fakeStore struct {
	mu sync.Mutex

	employees      map[int64]*domain.Employee
	assignments    map[int64]*domain.Assignment
	employeeLabels map[int64][]domain.ObjectLabel
	exceptions     map[int64]map[string]*domain.AvailabilityException
	patterns       map[int64]map[int32][]domain.AvailabilityPattern
	shifts         map[int64]*domain.Shift
	swapRequests   map[int64]*domain.SwapRequest

	nextShiftID int64
	nextSwapID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:      make(map[int64]*domain.Employee),
		assignments:    make(map[int64]*domain.Assignment),
		employeeLabels: make(map[int64][]domain.ObjectLabel),
		exceptions:     make(map[int64]map[string]*domain.AvailabilityException),
		patterns:       make(map[int64]map[int32][]domain.AvailabilityPattern),
		shifts:         make(map[int64]*domain.Shift),
		swapRequests:   make(map[int64]*domain.SwapRequest),
		nextShiftID:    1,
		nextSwapID:     1,
	}
}

func (f *fakeStore) addEmployee(e *domain.Employee) {
	f.employees[e.ID] = e
}

func (f *fakeStore) addAssignment(a *domain.Assignment) {
	f.assignments[a.ID] = a
}

func (f *fakeStore) addLabels(employeeID int64, names ...string) {
	labels := make([]domain.ObjectLabel, 0, len(names))
	for i, name := range names {
		labels = append(labels, domain.ObjectLabel{ID: int64(i + 1), Name: name})
	}
	f.employeeLabels[employeeID] = labels
}

func (f *fakeStore) addException(e *domain.AvailabilityException) {
	if f.exceptions[e.EmployeeID] == nil {
		f.exceptions[e.EmployeeID] = make(map[string]*domain.AvailabilityException)
	}
	f.exceptions[e.EmployeeID][e.Date.Format("2006-01-02")] = e
}

func (f *fakeStore) addPattern(p domain.AvailabilityPattern) {
	if f.patterns[p.EmployeeID] == nil {
		f.patterns[p.EmployeeID] = make(map[int32][]domain.AvailabilityPattern)
	}
	f.patterns[p.EmployeeID][p.DayOfWeek] = append(f.patterns[p.EmployeeID][p.DayOfWeek], p)
}

func (f *fakeStore) GetEmployeeByID(id int64) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	employee, ok := f.employees[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "employee", ID: id}
	}
	copied := *employee
	return &copied, nil
}

func (f *fakeStore) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	assignment, ok := f.assignments[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "assignment", ID: id}
	}
	copied := *assignment
	return &copied, nil
}

func (f *fakeStore) GetEmployeeLabels(employeeID int64) ([]domain.ObjectLabel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.employeeLabels[employeeID], nil
}

func (f *fakeStore) GetExceptionByDate(employeeID int64, date time.Time) (*domain.AvailabilityException, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	exception, ok := f.exceptions[employeeID][date.Format("2006-01-02")]
	if !ok {
		return nil, nil
	}
	copied := *exception
	return &copied, nil
}

func (f *fakeStore) GetPatternsByDay(employeeID int64, dayOfWeek int32) ([]domain.AvailabilityPattern, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AvailabilityPattern{}, f.patterns[employeeID][dayOfWeek]...), nil
}

func (f *fakeStore) GetShiftByID(id int64) (*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	shift, ok := f.shifts[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "shift", ID: id}
	}
	copied := *shift
	return &copied, nil
}

func (f *fakeStore) CreateShift(shift *domain.Shift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	shift.ID = f.nextShiftID
	f.nextShiftID++
	copied := *shift
	f.shifts[shift.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateShift(shift *domain.Shift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.shifts[shift.ID]; !ok {
		return &domain.NotFoundError{Resource: "shift", ID: shift.ID}
	}
	copied := *shift
	f.shifts[shift.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteShift(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.shifts[id]; !ok {
		return &domain.NotFoundError{Resource: "shift", ID: id}
	}
	delete(f.shifts, id)
	return nil
}

func (f *fakeStore) ListShiftsForEmployeeBetween(employeeID int64, from, to time.Time) ([]*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Shift, 0)
	for _, shift := range f.shifts {
		if shift.EmployeeID == nil || *shift.EmployeeID != employeeID {
			continue
		}
		if shift.StartTime.Before(from) || !shift.StartTime.Before(to) {
			continue
		}
		copied := *shift
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeStore) GetSwapRequestByID(id int64) (*domain.SwapRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.swapRequests[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "swap request", ID: id}
	}
	copied := *request
	return &copied, nil
}

func (f *fakeStore) CreateSwapRequest(request *domain.SwapRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	request.ID = f.nextSwapID
	f.nextSwapID++
	copied := *request
	f.swapRequests[request.ID] = &copied
	return nil
}

func (f *fakeStore) ClaimSwapRequest(requestID, employeeID int64) (*domain.SwapRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.swapRequests[requestID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "swap request", ID: requestID}
	}
	if request.Status != domain.SwapStatusPending || request.TargetEmployeeID != nil {
		return nil, &domain.ConflictError{Message: "already processed"}
	}
	request.TargetEmployeeID = &employeeID
	copied := *request
	return &copied, nil
}

func (f *fakeStore) FinalizeSwapRequest(requestID int64, status domain.SwapRequestStatus, approverID *int64, message string) (*domain.SwapRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.swapRequests[requestID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "swap request", ID: requestID}
	}
	if request.Status != domain.SwapStatusPending {
		return nil, &domain.ConflictError{Message: "already processed"}
	}
	request.Status = status
	request.ApproverID = approverID
	request.ResponseMessage = message
	copied := *request
	return &copied, nil
}

func (f *fakeStore) ApproveTakeover(requestID, approverID int64, message string) (*domain.SwapRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.swapRequests[requestID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "swap request", ID: requestID}
	}
	if request.Status != domain.SwapStatusPending || request.TargetEmployeeID == nil {
		return nil, &domain.ConflictError{Message: "already processed"}
	}

	request.Status = domain.SwapStatusApproved
	request.ApproverID = &approverID
	request.ResponseMessage = message

	if shift, ok := f.shifts[request.ShiftID]; ok {
		target := *request.TargetEmployeeID
		shift.EmployeeID = &target
	}

	copied := *request
	return &copied, nil
}

func (f *fakeStore) DeleteSwapRequest(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.swapRequests[id]; !ok {
		return &domain.NotFoundError{Resource: "swap request", ID: id}
	}
	delete(f.swapRequests, id)
	return nil
}

// recordedNotification captures a single Notify call.
type recordedNotification struct {
	EmployeeID int64
	Type       string
	Title      string
	Message    string
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []recordedNotification
}

func (n *recordingNotifier) Notify(employeeID int64, notificationType, title, message, link string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, recordedNotification{
		EmployeeID: employeeID,
		Type:       notificationType,
		Title:      title,
		Message:    message,
	})
}

func (n *recordingNotifier) sent() []recordedNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]recordedNotification{}, n.notifications...)
}

type stubDistance struct {
	km  float64
	err error
}

func (d *stubDistance) Distance(fromAddress, toAddress string) (float64, error) {
	return d.km, d.err
}

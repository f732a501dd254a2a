package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/testutil"
)

type LifecycleServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *repository.Store
	service  *LifecycleService
	now      time.Time
	operator *models.User
	seq      int
}

func (s *LifecycleServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = repository.NewStore(testutil.NewDB(s.T()))
	s.service = NewLifecycleService(s.store)
	s.now = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return s.now }

	s.operator = &models.User{Username: "operator", Email: "op@example.com", Role: models.RoleOperator, PasswordHash: "x"}
	s.Require().NoError(s.store.Users.Create(s.ctx, s.operator))
}

func (s *LifecycleServiceTestSuite) createOrder(status models.Status) *models.Order {
	order := &models.Order{Name: "A", Status: status}
	s.Require().NoError(s.store.Orders.Create(s.ctx, order))
	return order
}

func (s *LifecycleServiceTestSuite) createTask(status models.Status, operatorID *uint64) *models.Task {
	s.seq++
	ws := &models.Workstation{Name: fmt.Sprintf("Lathe %d", s.seq)}
	s.Require().NoError(s.store.Workstations.Create(s.ctx, ws))
	order := s.createOrder(models.StatusInProgress)

	task := &models.Task{Name: "Turn", OrderID: order.ID, WorkstationID: ws.ID, OperatorID: operatorID, Status: status}
	s.Require().NoError(s.store.Tasks.Create(s.ctx, task))
	return task
}

func (s *LifecycleServiceTestSuite) rejectReasonCount() int64 {
	n, err := s.store.RejectReasons.Count(s.ctx)
	s.Require().NoError(err)
	return n
}

func (s *LifecycleServiceTestSuite) TestStartOrder() {
	order := s.createOrder(models.StatusReadyToStart)

	started, err := s.service.StartOrder(s.ctx, order.ID)

	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, started.Status)
	s.Require().NotNil(started.StartTime)
	s.True(s.now.Equal(*started.StartTime))
}

func (s *LifecycleServiceTestSuite) TestStartTwiceFailsWithCurrentStatus() {
	order := s.createOrder(models.StatusReadyToStart)

	_, err := s.service.StartOrder(s.ctx, order.ID)
	s.Require().NoError(err)

	_, err = s.service.StartOrder(s.ctx, order.ID)
	var transitionErr *TransitionError
	s.Require().ErrorAs(err, &transitionErr)
	s.Equal(models.StatusInProgress, transitionErr.Current)
	s.Equal(models.StatusReadyToStart, transitionErr.Required)
}

func (s *LifecycleServiceTestSuite) TestStartMissingOrder() {
	_, err := s.service.StartOrder(s.ctx, 999)
	s.ErrorIs(err, ErrOrderNotFound)

	_, err = s.service.StartTask(s.ctx, 999)
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *LifecycleServiceTestSuite) TestStartFromTerminalStates() {
	for _, status := range []models.Status{models.StatusInProgress, models.StatusDone, models.StatusRejected} {
		task := s.createTask(status, nil)

		_, err := s.service.StartTask(s.ctx, task.ID)

		var transitionErr *TransitionError
		s.Require().ErrorAs(err, &transitionErr, status)
		s.Equal(status, transitionErr.Current)
	}
}

func (s *LifecycleServiceTestSuite) TestCompleteOrderRequiresInProgress() {
	order := s.createOrder(models.StatusReadyToStart)

	_, err := s.service.CompleteOrder(s.ctx, order.ID)
	var transitionErr *TransitionError
	s.Require().ErrorAs(err, &transitionErr)
	s.Equal(models.StatusReadyToStart, transitionErr.Current)

	_, err = s.service.StartOrder(s.ctx, order.ID)
	s.Require().NoError(err)

	done, err := s.service.CompleteOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusDone, done.Status)
	s.Require().NotNil(done.EndTime)
}

func (s *LifecycleServiceTestSuite) TestCompleteTaskAwardsOnePoint() {
	task := s.createTask(models.StatusInProgress, &s.operator.ID)

	result, err := s.service.CompleteTask(s.ctx, task.ID)

	s.Require().NoError(err)
	s.Equal(models.StatusDone, result.Task.Status)
	s.Require().NotNil(result.Task.EndTime)

	entries, err := s.store.Performance.ListByTask(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(1, entries[0].Points)
	s.Require().NotNil(entries[0].UserID)
	s.Equal(s.operator.ID, *entries[0].UserID)
}

func (s *LifecycleServiceTestSuite) TestCompleteTaskTwiceAwardsOnce() {
	task := s.createTask(models.StatusInProgress, &s.operator.ID)

	_, err := s.service.CompleteTask(s.ctx, task.ID)
	s.Require().NoError(err)

	_, err = s.service.CompleteTask(s.ctx, task.ID)
	var transitionErr *TransitionError
	s.Require().ErrorAs(err, &transitionErr)
	s.Equal(models.StatusDone, transitionErr.Current)

	entries, err := s.store.Performance.ListByTask(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *LifecycleServiceTestSuite) TestCompleteTaskWithoutOperator() {
	task := s.createTask(models.StatusInProgress, nil)

	result, err := s.service.CompleteTask(s.ctx, task.ID)

	s.Require().NoError(err)
	s.Nil(result.Performance.UserID)
}

func (s *LifecycleServiceTestSuite) TestRejectWithEmptyReasonDoesNotMutate() {
	task := s.createTask(models.StatusInProgress, nil)
	order := s.createOrder(models.StatusReadyToStart)
	before := s.rejectReasonCount()

	for _, reason := range []string{"", "   "} {
		_, err := s.service.RejectTask(s.ctx, task.ID, reason)
		s.ErrorIs(err, ErrRejectReasonRequired)

		_, err = s.service.RejectOrder(s.ctx, order.ID, reason)
		s.ErrorIs(err, ErrRejectReasonRequired)
	}

	s.Equal(before, s.rejectReasonCount())

	reloadedTask, err := s.store.Tasks.FindByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, reloadedTask.Status)

	reloadedOrder, err := s.store.Orders.FindByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusReadyToStart, reloadedOrder.Status)
}

func (s *LifecycleServiceTestSuite) TestRejectTaskFromAnyStatus() {
	for _, status := range []models.Status{models.StatusReadyToStart, models.StatusInProgress, models.StatusDone, models.StatusRejected} {
		task := s.createTask(status, nil)
		before := s.rejectReasonCount()

		result, err := s.service.RejectTask(s.ctx, task.ID, "scratched")

		s.Require().NoError(err, status)
		s.Equal(models.StatusRejected, result.Task.Status)
		s.Require().NotNil(result.Task.EndTime)
		s.Require().NotNil(result.Task.RejectReasonID)
		s.Equal(result.Reason.ID, *result.Task.RejectReasonID)
		s.Equal(before+1, s.rejectReasonCount())
	}
}

func (s *LifecycleServiceTestSuite) TestRejectDoesNotDeduplicateReasons() {
	first := s.createTask(models.StatusInProgress, nil)
	second := s.createTask(models.StatusInProgress, nil)

	a, err := s.service.RejectTask(s.ctx, first.ID, "defect")
	s.Require().NoError(err)
	b, err := s.service.RejectTask(s.ctx, second.ID, "defect")
	s.Require().NoError(err)

	s.NotEqual(a.Reason.ID, b.Reason.ID)
}

func (s *LifecycleServiceTestSuite) TestRejectDoneOrder() {
	order := s.createOrder(models.StatusDone)

	result, err := s.service.RejectOrder(s.ctx, order.ID, "defect")

	s.Require().NoError(err)
	s.Equal(models.StatusRejected, result.Order.Status)
	s.Equal("defect", result.Reason.Description)
	s.Require().NotNil(result.Order.EndTime)
}

func (s *LifecycleServiceTestSuite) TestRejectMissingEntityLeavesNoReason() {
	before := s.rejectReasonCount()

	_, err := s.service.RejectOrder(s.ctx, 999, "defect")
	s.ErrorIs(err, ErrOrderNotFound)

	_, err = s.service.RejectTask(s.ctx, 999, "defect")
	s.ErrorIs(err, ErrTaskNotFound)

	s.Equal(before, s.rejectReasonCount())
}

func TestLifecycleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LifecycleServiceTestSuite))
}

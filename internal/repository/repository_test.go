package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/eldercare-records/internal/model"
	"github.com/iliyamo/eldercare-records/internal/testsupport"
)

type repos struct {
	db          *sql.DB
	caregivers  *CaregiverRepo
	elderly     *ElderlyRepo
	tasks       *TaskRepo
	medications *MedicationRepo
	assignments *AssignmentRepo
	u1, u2      model.OwnerID
}

func newRepos(t *testing.T) repos {
	t.Helper()
	db := testsupport.OpenDB(t)
	return repos{
		db:          db,
		caregivers:  NewCaregiverRepo(db),
		elderly:     NewElderlyRepo(db),
		tasks:       NewTaskRepo(db),
		medications: NewMedicationRepo(db),
		assignments: NewAssignmentRepo(db),
		u1:          model.OwnerID(testsupport.SeedUser(t, db, "u1@example.com")),
		u2:          model.OwnerID(testsupport.SeedUser(t, db, "u2@example.com")),
	}
}

func (r repos) caregiver(t *testing.T, owner model.OwnerID, customID int64) model.Caregiver {
	t.Helper()
	c := model.Caregiver{CustomID: customID, Name: "John Doe", BankName: "Bank A", BankAccount: "12345", BranchNumber: "001"}
	require.NoError(t, r.caregivers.Create(context.Background(), owner, &c))
	return c
}

func (r repos) elder(t *testing.T, owner model.OwnerID, customID int64) model.Elderly {
	t.Helper()
	e := model.Elderly{CustomID: customID, Name: "Alice"}
	require.NoError(t, r.elderly.Create(context.Background(), owner, &e))
	return e
}

func TestCaregiverRepo_CreateGetList(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	c := r.caregiver(t, r.u1, 1)
	assert.NotZero(t, c.ID)
	assert.Equal(t, r.u1, c.UserID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := r.caregivers.Get(ctx, r.u1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)

	list, err := r.caregivers.List(ctx, r.u1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := r.caregivers.List(ctx, r.u2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOwnership_OtherTenantSeesNotFound(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c := r.caregiver(t, r.u1, 1)
	e := r.elder(t, r.u1, 1)
	a := model.Assignment{CaregiverID: c.ID, ElderlyID: e.ID}
	require.NoError(t, r.assignments.Create(ctx, r.u1, &a))
	task := model.Task{ElderlyID: e.ID, Description: "walk", Status: model.TaskPending}
	require.NoError(t, r.tasks.Create(ctx, r.u1, &task))

	_, err := r.caregivers.Get(ctx, r.u2, c.ID)
	assert.ErrorIs(t, err, model.ErrCaregiverNotFound)
	_, err = r.elderly.Get(ctx, r.u2, e.ID)
	assert.ErrorIs(t, err, model.ErrElderlyNotFound)
	_, err = r.assignments.Get(ctx, r.u2, a.ID)
	assert.ErrorIs(t, err, model.ErrAssignmentNotFound)
	_, err = r.tasks.Get(ctx, r.u2, e.ID, task.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = r.caregivers.Delete(ctx, r.u2, c.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, r.caregivers.UpdatePay(ctx, r.u2, c.ID, model.Payroll{TotalBank: 1}), model.ErrNotFound)

	// indistinguishable from an id that does not exist at all
	_, errMissing := r.caregivers.Get(ctx, r.u2, 9999)
	_, errForeign := r.caregivers.Get(ctx, r.u2, c.ID)
	assert.Equal(t, errMissing, errForeign)

	still, err := r.caregivers.Get(ctx, r.u1, c.ID)
	require.NoError(t, err)
	assert.Zero(t, still.Pay.TotalBank)
}

func TestCustomIDConflict_ScopedToOwner(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	r.caregiver(t, r.u1, 7)
	r.elder(t, r.u1, 7)

	dup := model.Caregiver{CustomID: 7, Name: "Other", BankName: "B", BankAccount: "1", BranchNumber: "2"}
	assert.ErrorIs(t, r.caregivers.Create(ctx, r.u1, &dup), model.ErrConflict)
	dupE := model.Elderly{CustomID: 7, Name: "Other"}
	assert.ErrorIs(t, r.elderly.Create(ctx, r.u1, &dupE), model.ErrElderlyExists)

	r.caregiver(t, r.u2, 7)
	r.elder(t, r.u2, 7)
}

func TestCaregiverRepo_UpdatePay(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c := r.caregiver(t, r.u1, 1)

	p, err := model.NewPayroll(model.PayInput{SalaryPrice: 100, SalaryAmount: 2, SaturdayPrice: 50, SaturdayAmount: 4, AllowancePrice: 30, AllowanceAmount: 3})
	require.NoError(t, err)
	require.NoError(t, r.caregivers.UpdatePay(ctx, r.u1, c.ID, p))
	// same values again must not look like a missing row
	require.NoError(t, r.caregivers.UpdatePay(ctx, r.u1, c.ID, p))

	got, err := r.caregivers.Get(ctx, r.u1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got.Pay)
	assert.Equal(t, 490.0, got.Pay.TotalBank)
}

func TestAssignmentRepo_UniquePairAndRecreate(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c := r.caregiver(t, r.u1, 101)
	e := r.elder(t, r.u1, 201)

	a := model.Assignment{CaregiverID: c.ID, ElderlyID: e.ID}
	require.NoError(t, r.assignments.Create(ctx, r.u1, &a))

	again := model.Assignment{CaregiverID: c.ID, ElderlyID: e.ID}
	assert.ErrorIs(t, r.assignments.Create(ctx, r.u1, &again), model.ErrAssignmentExists)

	removed, err := r.assignments.Delete(ctx, r.u1, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, removed.ID)

	again = model.Assignment{CaregiverID: c.ID, ElderlyID: e.ID}
	require.NoError(t, r.assignments.Create(ctx, r.u1, &again))
	assert.NotEqual(t, a.ID, again.ID)
}

func TestAssignmentRepo_RejectsForeignOrMissingSides(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e := r.elder(t, r.u1, 1)
	foreign := r.caregiver(t, r.u2, 1)

	a := model.Assignment{CaregiverID: 9999, ElderlyID: e.ID}
	err := r.assignments.Create(ctx, r.u1, &a)
	assert.ErrorIs(t, err, model.ErrCaregiverNotFound)
	assert.Equal(t, "Caregiver not found", err.Error())

	a = model.Assignment{CaregiverID: foreign.ID, ElderlyID: e.ID}
	assert.ErrorIs(t, r.assignments.Create(ctx, r.u1, &a), model.ErrCaregiverNotFound)

	c := r.caregiver(t, r.u1, 2)
	a = model.Assignment{CaregiverID: c.ID, ElderlyID: 9999}
	assert.ErrorIs(t, r.assignments.Create(ctx, r.u1, &a), model.ErrElderlyNotFound)

	list, err := r.assignments.List(ctx, r.u1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestElderlyRepo_DeleteCascades(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e := r.elder(t, r.u1, 1)
	other := r.elder(t, r.u1, 2)
	c := r.caregiver(t, r.u1, 1)

	for _, eid := range []uint64{e.ID, other.ID} {
		task := model.Task{ElderlyID: eid, Description: "walk", Status: model.TaskPending}
		require.NoError(t, r.tasks.Create(ctx, r.u1, &task))
		med := model.Medication{ElderlyID: eid, Name: "Aspirin", Dosage: "500mg", Frequency: "Once a day"}
		require.NoError(t, r.medications.Create(ctx, r.u1, &med))
		a := model.Assignment{CaregiverID: c.ID, ElderlyID: eid}
		require.NoError(t, r.assignments.Create(ctx, r.u1, &a))
	}

	removed, err := r.elderly.Delete(ctx, r.u1, e.ID)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, c.ID, removed[0].CaregiverID)

	_, err = r.elderly.Get(ctx, r.u1, e.ID)
	assert.ErrorIs(t, err, model.ErrElderlyNotFound)
	_, err = r.tasks.ListByElderly(ctx, r.u1, e.ID)
	assert.ErrorIs(t, err, model.ErrElderlyNotFound)
	_, err = r.medications.ListByElderly(ctx, r.u1, e.ID)
	assert.ErrorIs(t, err, model.ErrElderlyNotFound)
	links, err := r.assignments.ListByElderly(ctx, r.u1, e.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	// no orphans left behind in the raw tables
	var n int
	require.NoError(t, r.db.QueryRow("SELECT COUNT(*) FROM tasks WHERE elderly_id = ?", e.ID).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, r.db.QueryRow("SELECT COUNT(*) FROM medications WHERE elderly_id = ?", e.ID).Scan(&n))
	assert.Zero(t, n)

	// the sibling record is untouched
	ts, err := r.tasks.ListByElderly(ctx, r.u1, other.ID)
	require.NoError(t, err)
	assert.Len(t, ts, 1)
}

func TestCaregiverRepo_DeleteCascadesAssignments(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c := r.caregiver(t, r.u1, 1)
	e1 := r.elder(t, r.u1, 1)
	e2 := r.elder(t, r.u1, 2)
	for _, eid := range []uint64{e1.ID, e2.ID} {
		a := model.Assignment{CaregiverID: c.ID, ElderlyID: eid}
		require.NoError(t, r.assignments.Create(ctx, r.u1, &a))
	}

	removed, err := r.caregivers.Delete(ctx, r.u1, c.ID)
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	links, err := r.assignments.List(ctx, r.u1)
	require.NoError(t, err)
	assert.Empty(t, links)
	_, err = r.elderly.Get(ctx, r.u1, e1.ID)
	assert.NoError(t, err)
}

func TestNestedChildMustMatchParent(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e1 := r.elder(t, r.u1, 1)
	e2 := r.elder(t, r.u1, 2)
	task := model.Task{ElderlyID: e1.ID, Description: "walk", Status: model.TaskPending}
	require.NoError(t, r.tasks.Create(ctx, r.u1, &task))
	med := model.Medication{ElderlyID: e1.ID, Name: "Aspirin", Dosage: "500mg", Frequency: "daily"}
	require.NoError(t, r.medications.Create(ctx, r.u1, &med))

	_, err := r.tasks.Get(ctx, r.u1, e2.ID, task.ID)
	assert.ErrorIs(t, err, model.ErrTaskNotFound)
	assert.ErrorIs(t, r.tasks.SetStatus(ctx, r.u1, e2.ID, task.ID, model.TaskCompleted), model.ErrTaskNotFound)
	assert.ErrorIs(t, r.tasks.Delete(ctx, r.u1, e2.ID, task.ID), model.ErrTaskNotFound)
	assert.ErrorIs(t, r.medications.Delete(ctx, r.u1, e2.ID, med.ID), model.ErrMedicationNotFound)

	got, err := r.tasks.Get(ctx, r.u1, e1.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, got.Status)
}

func TestTaskRepo_SetStatus(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e := r.elder(t, r.u1, 1)
	task := model.Task{ElderlyID: e.ID, Description: "walk", Status: model.TaskPending}
	require.NoError(t, r.tasks.Create(ctx, r.u1, &task))

	for _, st := range []model.TaskStatus{model.TaskCompleted, model.TaskPending, model.TaskInProgress, model.TaskInProgress} {
		require.NoError(t, r.tasks.SetStatus(ctx, r.u1, e.ID, task.ID, st))
		got, err := r.tasks.Get(ctx, r.u1, e.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}
}

func TestMedicationRepo_InsertionOrder(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e := r.elder(t, r.u1, 1)

	var ids []uint64
	for _, name := range []string{"Aspirin", "Ibuprofen", "Paracetamol"} {
		m := model.Medication{ElderlyID: e.ID, Name: name, Dosage: "1", Frequency: "daily"}
		require.NoError(t, r.medications.Create(ctx, r.u1, &m))
		ids = append(ids, m.ID)
	}
	require.NoError(t, r.medications.Delete(ctx, r.u1, e.ID, ids[0]))

	list, err := r.medications.ListByElderly(ctx, r.u1, e.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ibuprofen", list[0].Name)
	assert.Equal(t, "Paracetamol", list[1].Name)

	err = r.medications.Delete(ctx, r.u1, e.ID, ids[0])
	assert.True(t, errors.Is(err, model.ErrMedicationNotFound))
}

// internal/content/members_test.go

package content

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func memberRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "name_en", "role", "email", "photo_url",
		"bio", "bio_en", "display_order", "created_at", "updated_at",
	})
}

func TestListMembersOrdering(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`ORDER BY display_order ASC, created_at ASC, id ASC`).
		WillReturnRows(memberRows().
			AddRow(1, "김교수", nil, RoleProfessor, "prof@lab.test", nil, nil, nil, 0, now, now).
			AddRow(2, "박연구", nil, RoleResearcher, "res@lab.test", nil, nil, nil, 1, now, now))

	members, err := ListMembers(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "김교수", members[0].Name)
	assert.Equal(t, RoleResearcher, members[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembersByRoleGroups(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM\s+member`).
		WillReturnRows(memberRows().
			AddRow(1, "김교수", nil, RoleProfessor, "prof@lab.test", nil, nil, nil, 0, now, now).
			AddRow(2, "이박사", nil, RolePhD, "phd1@lab.test", nil, nil, nil, 0, now, now).
			AddRow(3, "최박사", nil, RolePhD, "phd2@lab.test", nil, nil, nil, 1, now, now))

	grouped, err := MembersByRole(context.Background(), db)
	require.NoError(t, err)
	assert.Len(t, grouped[RoleProfessor], 1)
	assert.Len(t, grouped[RolePhD], 2)
	_, hasMaster := grouped[RoleMaster]
	assert.False(t, hasMaster)
}

func TestCreateMemberDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`WHERE\s+email = \?`).
		WithArgs("prof@lab.test").
		WillReturnRows(memberRows().
			AddRow(1, "김교수", nil, RoleProfessor, "prof@lab.test", nil, nil, nil, 0, now, now))

	in := &MemberInput{Name: "신입", Role: RoleMaster, Email: "prof@lab.test"}
	_, err := CreateMember(context.Background(), db, in)
	ue, ok := AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, msgMemberEmailTaken, ue.Message)
	assert.False(t, ue.NotFound)
}

func TestCreateMemberInserts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`WHERE\s+email = \?`).
		WithArgs("new@lab.test").
		WillReturnRows(memberRows())
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO member`)).
		WillReturnResult(sqlmock.NewResult(7, 1))

	in := &MemberInput{Name: "신입", Role: RoleMaster, Email: "new@lab.test"}
	id, err := CreateMember(context.Background(), db, in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMemberUnknownID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`WHERE\s+id = \?`).
		WithArgs(int64(99)).
		WillReturnRows(memberRows())

	err := UpdateMember(context.Background(), db, 99, &MemberInput{
		Name: "없는사람", Role: RolePhD, Email: "x@lab.test",
	})
	ue, ok := AsUserError(err)
	require.True(t, ok)
	assert.True(t, ue.NotFound)
	assert.Equal(t, msgMemberNotFound, ue.Message)
}

func TestDeleteMemberMissingRow(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM member WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := DeleteMember(context.Background(), db, 5)
	ue, ok := AsUserError(err)
	require.True(t, ok)
	assert.True(t, ue.NotFound)
}

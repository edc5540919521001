package services

import (
	"testing"

	"github.com/SalvereHW/SelfCoach-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  []*models.User
	nextID uint

	subjectLookups int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) FindBySubject(subject string) (*models.User, error) {
	r.subjectLookups++
	for _, u := range r.users {
		if u.SubjectID != nil && *u.SubjectID == subject {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) LinkSubject(userID uint, subject string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			u.SubjectID = &subject
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return nil
}

func TestResolveProvisionsUnknownSubject(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewIdentityService(repo)

	claims := &Claims{
		Subject: "sub-1",
		Email:   "new@example.com",
		Metadata: map[string]any{
			"first_name": "Ada",
			"last_name":  "Lovelace",
		},
	}

	user, err := svc.Resolve(claims)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	require.NotNil(t, user.SubjectID)
	assert.Equal(t, "sub-1", *user.SubjectID)
	assert.True(t, user.IsActive)
}

func TestResolveProvisionPlaceholderNames(t *testing.T) {
	svc := NewIdentityService(newFakeUserRepo())

	user, err := svc.Resolve(&Claims{Subject: "sub-1", Email: "bare@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", user.FirstName)
	assert.Equal(t, "User", user.LastName)
}

func TestResolveLinksByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	require.NoError(t, repo.Create(&models.User{Email: "known@example.com", FirstName: "Grace"}))

	svc := NewIdentityService(repo)
	user, err := svc.Resolve(&Claims{Subject: "sub-9", Email: "known@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.FirstName)
	require.NotNil(t, user.SubjectID)
	assert.Equal(t, "sub-9", *user.SubjectID)
	assert.Len(t, repo.users, 1, "no duplicate row")
}

func TestResolveNoEmailNoSubjectMatch(t *testing.T) {
	svc := NewIdentityService(newFakeUserRepo())

	_, err := svc.Resolve(&Claims{Subject: "sub-1"})
	assert.ErrorIs(t, err, ErrUserResolution)

	_, err = svc.Resolve(nil)
	assert.ErrorIs(t, err, ErrUserResolution)

	_, err = svc.Resolve(&Claims{})
	assert.ErrorIs(t, err, ErrUserResolution)
}

func TestResolveCachesAndInvalidates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewIdentityService(repo)
	claims := &Claims{Subject: "sub-1", Email: "cache@example.com"}

	_, err := svc.Resolve(claims)
	require.NoError(t, err)
	lookupsAfterFirst := repo.subjectLookups

	_, err = svc.Resolve(claims)
	require.NoError(t, err)
	assert.Equal(t, lookupsAfterFirst, repo.subjectLookups, "second resolve served from cache")

	svc.Invalidate("sub-1")
	_, err = svc.Resolve(claims)
	require.NoError(t, err)
	assert.Greater(t, repo.subjectLookups, lookupsAfterFirst, "invalidation forces a fresh lookup")
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skripsiku_backend/internals/features/users/user/dto"
	"skripsiku_backend/internals/features/users/user/model"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
	"skripsiku_backend/internals/helpers/oss"
)

type fakeUserRepo struct {
	users []*model.UserModel
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.UserModel, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User tidak ditemukan")
}

func (f *fakeUserRepo) List(_ context.Context, _ dto.ListUserQuery, _, _ int) ([]model.UserModel, int64, error) {
	out := make([]model.UserModel, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) ExistsByUserNameOrEmail(_ context.Context, userName, email string) (bool, error) {
	for _, u := range f.users {
		if u.UserName == userName || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.UserModel) error {
	u.ID = uuid.New()
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, url, key string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.AvatarURL, u.AvatarKey = &url, &key
			return nil
		}
	}
	return apperr.NotFound("User tidak ditemukan")
}

func (f *fakeUserRepo) ListIDsByRole(context.Context, string) ([]uuid.UUID, error) { return nil, nil }

func TestParseStudentCSV(t *testing.T) {
	in := "email,NIM,name\n a@kampus.ac.id ,1900001, siti  aminah \n\nb@kampus.ac.id,1900002,Budi\n"
	rows, err := ParseStudentCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1900001", rows[0].NIM)
	assert.Equal(t, "a@kampus.ac.id", rows[0].Email)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 4, rows[1].Line)

	_, err = ParseStudentCSV(strings.NewReader("nim,name\n1,a\n"))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = ParseStudentCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestImportStudentsCreatesSkipsAndReports(t *testing.T) {
	repo := &fakeUserRepo{users: []*model.UserModel{{ID: uuid.New(), UserName: "1900001", Email: "lama@kampus.ac.id"}}}
	svc := &UserService{Repo: repo, Validator: helper.Validator(), BcryptCost: bcrypt.MinCost}

	csvData := strings.Join([]string{
		"nim,name,email",
		"1900001,Sudah Ada,lama@kampus.ac.id",
		"1900002,Budi Santoso,budi@kampus.ac.id",
		"1900002,Budi Dobel,budi2@kampus.ac.id",
		"19,Pendek,bukan-email",
	}, "\n")

	res, err := svc.ImportStudents(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 5, res.Errors[0].Line)

	created := repo.users[len(repo.users)-1]
	assert.Equal(t, "mahasiswa", created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("1900002")))
}

func TestUploadAvatarRejectsNonImage(t *testing.T) {
	u := &model.UserModel{ID: uuid.New(), UserName: "1900001"}
	repo := &fakeUserRepo{users: []*model.UserModel{u}}
	svc := &UserService{Repo: repo, Storage: oss.NewLocalStorage(t.TempDir(), "/uploads")}

	_, err := svc.UploadAvatar(context.Background(), u.ID, []byte("bukan gambar"), "a.png")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Nil(t, u.AvatarURL)
}

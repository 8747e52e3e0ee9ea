package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Maxito7/barberias_backend/internal/application"
	"github.com/Maxito7/barberias_backend/internal/domain"
	"github.com/Maxito7/barberias_backend/internal/places"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBarberiaRepo struct {
	barberias []domain.Barberia

	calificadaID         int
	calificacionRecibida int
	atribucionRecibida   domain.Atribucion
}

func (f *fakeBarberiaRepo) GetAll() ([]domain.Barberia, error) {
	return f.barberias, nil
}

func (f *fakeBarberiaRepo) Create(b domain.Barberia) (int, error) {
	return 1, nil
}

func (f *fakeBarberiaRepo) GetByID(id int) (*domain.Barberia, []domain.Calificacion, error) {
	for i := range f.barberias {
		if f.barberias[i].ID == id {
			return &f.barberias[i], []domain.Calificacion{}, nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

func (f *fakeBarberiaRepo) SearchText(q string) ([]domain.Barberia, error) {
	return f.barberias, nil
}

func (f *fakeBarberiaRepo) Calificar(barberiaID, calificacion int, comentario string, atribucion domain.Atribucion) error {
	f.calificadaID = barberiaID
	f.calificacionRecibida = calificacion
	f.atribucionRecibida = atribucion
	return nil
}

type fakePlaces struct {
	ultimoRadio   int
	llamadasTexto int
}

func (f *fakePlaces) BuscarCercanas(ctx context.Context, lat, lng float64, radioMetros int) ([]places.Barberia, error) {
	f.ultimoRadio = radioMetros
	return nil, nil
}

func (f *fakePlaces) BuscarPorTexto(ctx context.Context, query string, lat, lng float64) ([]places.Barberia, error) {
	f.llamadasTexto++
	return nil, nil
}

type fakeUsuarioRepo struct {
	usuarios map[string]*domain.Usuario
	nextID   int
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[string]*domain.Usuario), nextID: 1}
}

func (f *fakeUsuarioRepo) Create(u *domain.Usuario) error {
	if _, ok := f.usuarios[u.Username]; ok {
		return fmt.Errorf("%w: el username o email ya está registrado", domain.ErrConflict)
	}
	u.ID = f.nextID
	f.nextID++
	u.FechaRegistro = time.Now()
	f.usuarios[u.Username] = u
	return nil
}

func (f *fakeUsuarioRepo) FindByUsername(username string) (*domain.Usuario, error) {
	if u, ok := f.usuarios[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsuarioRepo) FindByID(id int) (*domain.Usuario, error) {
	for _, u := range f.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsuarioRepo) UpdatePerfil(id int, nombreCompleto, telefono, email string) error {
	u, err := f.FindByID(id)
	if err != nil {
		return err
	}
	u.NombreCompleto = nombreCompleto
	u.Telefono = telefono
	u.Email = email
	return nil
}

func (f *fakeUsuarioRepo) UpdatePassword(id int, passwordHash string) error {
	u, err := f.FindByID(id)
	if err != nil {
		return err
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUsuarioRepo) TouchUltimoAcceso(id int) error { return nil }

func (f *fakeUsuarioRepo) CalificacionesDeUsuario(usuarioID int) ([]domain.CalificacionConBarberia, error) {
	return []domain.CalificacionConBarberia{}, nil
}

type entornoPruebas struct {
	app          *fiber.App
	barberiaRepo *fakeBarberiaRepo
	placesClient *fakePlaces
	authService  *application.AuthService
}

func nuevoEntorno(t *testing.T) *entornoPruebas {
	t.Helper()

	barberiaRepo := &fakeBarberiaRepo{}
	placesClient := &fakePlaces{}
	usuarioRepo := newFakeUsuarioRepo()

	barberiaService := application.NewBarberiaService(barberiaRepo)
	busquedaService := application.NewBusquedaService(barberiaRepo, placesClient)
	authService := application.NewAuthService(usuarioRepo, "secreto-de-pruebas", nil, nil)

	barberiaHandler := NewBarberiaHandler(barberiaService)
	busquedaHandler := NewBusquedaHandler(busquedaService, 5000, 50000)
	authHandler := NewAuthHandler(authService)
	authMiddleware := NewAuthMiddleware(authService)

	app := fiber.New()
	api := app.Group("/api")

	barberias := api.Group("/barberias")
	barberias.Get("/", barberiaHandler.GetAll)
	barberias.Post("/", barberiaHandler.Create)
	barberias.Get("/buscar", busquedaHandler.Buscar)
	barberias.Get("/cercanas", busquedaHandler.Cercanas)
	barberias.Get("/:id", barberiaHandler.GetByID)
	barberias.Post("/:id/calificar", authMiddleware.OptionalAuth, barberiaHandler.Calificar)

	auth := api.Group("/auth")
	auth.Post("/registro", authHandler.Registro)
	auth.Post("/login", authHandler.Login)
	auth.Get("/perfil", authMiddleware.RequireAuth, authHandler.Perfil)

	return &entornoPruebas{
		app:          app,
		barberiaRepo: barberiaRepo,
		placesClient: placesClient,
		authService:  authService,
	}
}

func (e *entornoPruebas) request(t *testing.T, method, target, body, token string) *nethttp.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *nethttp.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func tokenDePrueba(t *testing.T, e *entornoPruebas) (string, *domain.Usuario) {
	t.Helper()
	usuario, err := e.authService.Registro("juan_perez", "juan@email.com", "password123", "Juan Pérez", "")
	require.NoError(t, err)
	token, _, err := e.authService.Login("juan_perez", "password123")
	require.NoError(t, err)
	return token, usuario
}

func TestGetAllSinBarberiasRespondeListaVacia(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/barberias/", "", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var barberias []domain.Barberia
	decodeJSON(t, resp, &barberias)
	assert.NotNil(t, barberias)
	assert.Empty(t, barberias)
}

func TestCreateSinNombreResponde400(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "POST", "/api/barberias/", `{"direccion":"Av. Principal 123"}`, "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["error"], "nombre")
}

func TestCreateResponde201ConID(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "POST", "/api/barberias/",
		`{"nombre":"Barbería Clásica","direccion":"Av. Principal 123"}`, "")
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, float64(1), body["id"])
	assert.NotEmpty(t, body["mensaje"])
}

func TestGetByIDInexistenteResponde404(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/barberias/42", "", "")
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}

func TestGetByIDNoNumericoResponde400(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/barberias/abc", "", "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestCalificarAnonimoUsaElNombreLibre(t *testing.T) {
	e := nuevoEntorno(t)
	e.barberiaRepo.barberias = []domain.Barberia{{ID: 1, Nombre: "Barbería Clásica"}}

	resp := e.request(t, "POST", "/api/barberias/1/calificar",
		`{"calificacion":5,"comentario":"Excelente","nombre_usuario":"Ana"}`, "")
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	assert.Equal(t, 1, e.barberiaRepo.calificadaID)
	assert.Equal(t, 5, e.barberiaRepo.calificacionRecibida)
	nombre, ok := e.barberiaRepo.atribucionRecibida.NombreUsuario()
	require.True(t, ok)
	assert.Equal(t, "Ana", nombre)
}

func TestCalificarAnonimoSinNombreQuedaComoAnonimo(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "POST", "/api/barberias/1/calificar", `{"calificacion":4}`, "")
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	nombre, ok := e.barberiaRepo.atribucionRecibida.NombreUsuario()
	require.True(t, ok)
	assert.Equal(t, "Anónimo", nombre)
}

func TestCalificarConTokenAtribuyeAlUsuario(t *testing.T) {
	e := nuevoEntorno(t)
	token, usuario := tokenDePrueba(t, e)

	resp := e.request(t, "POST", "/api/barberias/1/calificar",
		`{"calificacion":5,"nombre_usuario":"ignorado"}`, token)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	id, ok := e.barberiaRepo.atribucionRecibida.UsuarioID()
	require.True(t, ok)
	assert.Equal(t, usuario.ID, id)
}

func TestCalificarConTokenInvalidoContinuaComoAnonimo(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "POST", "/api/barberias/1/calificar",
		`{"calificacion":3,"nombre_usuario":"Ana"}`, "token-invalido")
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	nombre, ok := e.barberiaRepo.atribucionRecibida.NombreUsuario()
	require.True(t, ok)
	assert.Equal(t, "Ana", nombre)
}

func TestCalificarFueraDeRangoResponde400(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "POST", "/api/barberias/1/calificar", `{"calificacion":6}`, "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestCercanasRequiereCoordenadas(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/barberias/cercanas", "", "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp = e.request(t, "GET", "/api/barberias/cercanas?lat=19.4326&lng=abc", "", "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestCercanasUsaElRadioPorDefecto(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/barberias/cercanas?lat=19.4326&lng=-99.1332", "", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, 5000, e.placesClient.ultimoRadio)

	resp = e.request(t, "GET", "/api/barberias/cercanas?lat=19.4326&lng=-99.1332&radio=20000", "", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, 20000, e.placesClient.ultimoRadio)
}

func TestCercanasRadioAmplioHaceFanOutPorTexto(t *testing.T) {
	e := nuevoEntorno(t)

	// Un radio fuera del límite se clampa a 50 km y se resuelve por Text Search
	resp := e.request(t, "GET", "/api/barberias/cercanas?lat=19.4326&lng=-99.1332&radio=99999", "", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, e.placesClient.ultimoRadio)
	assert.Equal(t, 4, e.placesClient.llamadasTexto)
}

func TestCercanasRadioInvalidoResponde400(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/barberias/cercanas?lat=19.4326&lng=-99.1332&radio=-5", "", "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestBuscarRespondeListaVacia(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/barberias/buscar?q=", "", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var resultados []domain.ResultadoBusqueda
	decodeJSON(t, resp, &resultados)
	assert.NotNil(t, resultados)
	assert.Empty(t, resultados)
}

func TestPerfilSinTokenResponde401(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/auth/perfil", "", "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestPerfilConTokenInvalidoResponde401(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "GET", "/api/auth/perfil", "", "token-invalido")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestPerfilConTokenValidoRetornaElUsuario(t *testing.T) {
	e := nuevoEntorno(t)
	token, usuario := tokenDePrueba(t, e)

	resp := e.request(t, "GET", "/api/auth/perfil", "", token)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, float64(usuario.ID), body["id"])
	assert.Equal(t, "juan_perez", body["username"])
	// El hash nunca sale en las respuestas
	_, expuesto := body["password_hash"]
	assert.False(t, expuesto)
}

func TestRegistroYLoginEndToEnd(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.request(t, "POST", "/api/auth/registro",
		`{"username":"maria_garcia","email":"maria@email.com","password":"password123","nombre_completo":"María García"}`, "")
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp = e.request(t, "POST", "/api/auth/login",
		`{"username":"maria_garcia","password":"password123"}`, "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.NotEmpty(t, body["token"])
}

func TestRegistroDuplicadoResponde400(t *testing.T) {
	e := nuevoEntorno(t)
	tokenDePrueba(t, e)

	resp := e.request(t, "POST", "/api/auth/registro",
		`{"username":"juan_perez","email":"otro@email.com","password":"password123","nombre_completo":"Otro Juan"}`, "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestLoginIncorrectoResponde401(t *testing.T) {
	e := nuevoEntorno(t)
	tokenDePrueba(t, e)

	resp := e.request(t, "POST", "/api/auth/login",
		`{"username":"juan_perez","password":"incorrecto"}`, "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestErroresInesperadosNoFiltranDetalles(t *testing.T) {
	app := fiber.New()
	app.Get("/falla", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("pq: detalle interno de la base"))
	})

	req := httptest.NewRequest("GET", "/falla", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "error interno del servidor", body["error"])
}

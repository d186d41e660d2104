package staff

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"gostore/internal/api/response"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/middleware"
)

// InvitationService define o ciclo de vida dos convites de equipe.
type InvitationService interface {
	CreateInvitation(ctx context.Context, session domain.Session, storeID string, req domain.InvitationCreation) (domain.StaffInvitation, error)
	AcceptInvitation(ctx context.Context, storeID string, req domain.InvitationAcceptance) (domain.RoleAssignment, error)
	GetPendingInvitation(ctx context.Context, storeID, invitationID string) (domain.StaffInvitation, error)
}

// InvitationIDParam é o parâmetro de query lido pela página de entrada.
const InvitationIDParam = "invitationId"

// Handler agrupa os handlers de equipe.
type Handler struct {
	Invitations InvitationService
	Writer      *response.Writer
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(invitations InvitationService, writer *response.Writer) *Handler {
	return &Handler{Invitations: invitations, Writer: writer}
}

// CreateInvitationHandler lida com a requisição POST /api/{storeId}/staff/invitations.
// @Summary Convida um membro para a equipe da loja
// @Description Exige a permissão staff:write na loja (o dono sempre pode).
// @Tags staff
// @Accept json
// @Produce json
// @Param storeId path string true "ID da loja"
// @Param invitation body domain.InvitationCreation true "E-mail e papel"
// @Success 201 {object} domain.StaffInvitation
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou expirada"
// @Failure 403 {object} domain.ErrorResponse "Permissão insuficiente"
// @Router /api/{storeId}/staff/invitations [post]
func (h *Handler) CreateInvitationHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetAdminSessionFromContext(r.Context())
	if !ok {
		h.Writer.Error(w, r, apperror.NewUnauthorizedError("Sessão ausente ou expirada."))
		return
	}

	var req domain.InvitationCreation
	if err := response.DecodeJSON(r, &req); err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	inv, err := h.Invitations.CreateInvitation(r.Context(), session, mux.Vars(r)[middleware.StoreIDVar], req)
	h.Writer.Handle(w, r, inv, err, http.StatusCreated)
}

// JoinPageHandler lida com a requisição GET /api/{storeId}/staff/join?invitationId=...
// @Summary Consulta um convite pendente
// @Description Usado pela página de entrada para exibir o e-mail convidado antes do aceite.
// @Tags staff
// @Produce json
// @Param storeId path string true "ID da loja"
// @Param invitationId query string true "ID do convite"
// @Success 200 {object} domain.StaffInvitation
// @Failure 400 {object} domain.ErrorResponse "Convite inválido, expirado ou já usado"
// @Router /api/{storeId}/staff/join [get]
func (h *Handler) JoinPageHandler(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Invitations.GetPendingInvitation(r.Context(), mux.Vars(r)[middleware.StoreIDVar], r.URL.Query().Get(InvitationIDParam))
	h.Writer.Handle(w, r, inv, err, http.StatusOK)
}

// JoinHandler lida com a requisição POST /api/{storeId}/staff/join.
// @Summary Aceita um convite de equipe
// @Description Cria o usuário se necessário e atribui o papel do convite. Um convite só pode ser aceito uma vez.
// @Tags staff
// @Accept json
// @Produce json
// @Param storeId path string true "ID da loja"
// @Param acceptance body domain.InvitationAcceptance true "Convite, nome e senha"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} domain.ErrorResponse "Convite inválido, expirado ou já usado"
// @Router /api/{storeId}/staff/join [post]
func (h *Handler) JoinHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.InvitationAcceptance
	if err := response.DecodeJSON(r, &req); err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	if _, err := h.Invitations.AcceptInvitation(r.Context(), mux.Vars(r)[middleware.StoreIDVar], req); err != nil {
		h.Writer.Error(w, r, err)
		return
	}
	h.Writer.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

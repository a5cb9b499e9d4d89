// Package kratos 封装 Ory Kratos Admin API 中注册流程需要的调用
package kratos

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/xerrors"

	"github.com/google/uuid"
	ory "github.com/ory/kratos-client-go"
)

// 公共元数据中的键
const (
	MetadataFullName = "full_name"
	MetadataUserRole = "user_role"
)

// DefaultPageSize 列出身份时的默认分页大小
const DefaultPageSize = 250

// CreateIdentityInput 创建身份所需的数据
type CreateIdentityInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// Identity 列表中返回的身份摘要
type Identity struct {
	ID        string
	Email     string
	FullName  string
	Role      string
	CreatedAt time.Time // Kratos 未返回时为零值
}

// Client Kratos Admin API 客户端
type Client struct {
	adminURL    string
	schemaID    string
	adminClient *ory.APIClient
	logger      log.Logger
}

// NewClient 创建 Kratos Admin 客户端
func NewClient(adminURL, schemaID string, logger log.Logger) *Client {
	adminConfig := ory.NewConfiguration()
	adminConfig.Servers = []ory.ServerConfiguration{
		{
			URL: strings.TrimRight(adminURL, "/"),
		},
	}
	if logger == nil {
		logger = log.GetLogger()
	}

	return &Client{
		adminURL:    adminURL,
		schemaID:    schemaID,
		adminClient: ory.NewAPIClient(adminConfig),
		logger:      logger,
	}
}

// CreateIdentity 在 Kratos 中创建带密码凭证的身份，返回身份 ID
func (c *Client) CreateIdentity(ctx context.Context, input CreateIdentityInput) (string, error) {
	traits := map[string]interface{}{
		"email": input.Email,
	}

	password := input.Password
	credentials := ory.IdentityWithCredentials{
		Password: &ory.IdentityWithCredentialsPassword{
			Config: &ory.IdentityWithCredentialsPasswordConfig{
				Password: &password,
			},
		},
	}

	body := ory.CreateIdentityBody{
		SchemaId:    c.schemaID,
		Traits:      traits,
		Credentials: &credentials,
		MetadataPublic: map[string]interface{}{
			MetadataFullName: input.FullName,
			MetadataUserRole: input.Role,
		},
	}

	identity, resp, err := c.adminClient.IdentityAPI.CreateIdentity(ctx).
		CreateIdentityBody(body).
		Execute()
	if err != nil {
		status := statusOf(resp)
		c.logger.WarnContext(ctx, "创建 Kratos identity 失败",
			log.Int("status_code", status),
			log.String("reason", xerrors.ClassifyKratosStatus(status)),
			log.Err(err))
		return "", xerrors.NewKratosError("CreateIdentity", status, err).
			WithService("kratos_client", "CreateIdentity")
	}

	if identity == nil {
		return "", xerrors.NewKratosDataIntegrityError("id", "empty identity in response").
			WithService("kratos_client", "CreateIdentity")
	}
	if _, parseErr := uuid.Parse(identity.Id); parseErr != nil {
		return "", xerrors.NewKratosDataIntegrityError("id", "identity id is not a uuid").
			WithService("kratos_client", "CreateIdentity").
			WithMetadata("identity_id", identity.Id)
	}

	c.logger.InfoContext(ctx, "成功创建 Kratos identity",
		log.String("identity_id", identity.Id))

	return identity.Id, nil
}

// DeleteIdentity 删除身份，身份不存在视为成功
func (c *Client) DeleteIdentity(ctx context.Context, identityID string) error {
	resp, err := c.adminClient.IdentityAPI.DeleteIdentity(ctx, identityID).Execute()
	if err != nil {
		status := statusOf(resp)
		if status == http.StatusNotFound {
			c.logger.InfoContext(ctx, "Kratos identity 不存在，跳过删除",
				log.String("identity_id", identityID))
			return nil
		}
		c.logger.WarnContext(ctx, "删除 Kratos identity 失败",
			log.Int("status_code", status),
			log.String("identity_id", identityID),
			log.Err(err))
		return xerrors.NewKratosError("DeleteIdentity", status, err).
			WithService("kratos_client", "DeleteIdentity").
			WithMetadata("identity_id", identityID)
	}

	c.logger.InfoContext(ctx, "成功删除 Kratos identity", log.String("identity_id", identityID))
	return nil
}

// ListIdentitiesByRole 列出公共元数据 user_role 等于 role 的全部身份
//
// Kratos 不支持按元数据过滤，这里逐页拉取后在本地过滤。
func (c *Client) ListIdentitiesByRole(ctx context.Context, role string, pageSize int) ([]Identity, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var (
		result    []Identity
		pageToken string
	)
	for {
		req := c.adminClient.IdentityAPI.ListIdentities(ctx).PageSize(int64(pageSize))
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		identities, resp, err := req.Execute()
		if err != nil {
			status := statusOf(resp)
			return nil, xerrors.NewKratosError("ListIdentities", status, err).
				WithService("kratos_client", "ListIdentities")
		}

		for _, identity := range identities {
			summary := summarize(identity)
			if summary.Role == role {
				result = append(result, summary)
			}
		}

		pageToken = nextPageToken(resp)
		if pageToken == "" || len(identities) == 0 {
			return result, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

func summarize(identity ory.Identity) Identity {
	summary := Identity{ID: identity.Id, CreatedAt: identity.GetCreatedAt()}
	if traits, ok := identity.Traits.(map[string]interface{}); ok {
		summary.Email, _ = traits["email"].(string)
	}
	if metadata, ok := identity.MetadataPublic.(map[string]interface{}); ok {
		summary.FullName, _ = metadata[MetadataFullName].(string)
		summary.Role, _ = metadata[MetadataUserRole].(string)
	}
	return summary
}

// nextPageToken 从 Link 响应头中解析 rel="next" 的 page_token
func nextPageToken(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	for _, header := range resp.Header.Values("Link") {
		for _, part := range strings.Split(header, ",") {
			segments := strings.Split(part, ";")
			if len(segments) < 2 || !strings.Contains(part, `rel="next"`) {
				continue
			}
			raw := strings.Trim(strings.TrimSpace(segments[0]), "<>")
			link, err := url.Parse(raw)
			if err != nil {
				continue
			}
			if token := link.Query().Get("page_token"); token != "" {
				return token
			}
		}
	}
	return ""
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

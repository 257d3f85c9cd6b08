package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var english = map[string]string{
	"app.name":                        "CRM Portal",
	"nav.home":                        "Home",
	"nav.faq":                         "FAQ",
	"nav.login":                       "Sign in",
	"nav.signup":                      "Create account",
	"nav.logout":                      "Sign out",
	"nav.portal":                      "Portal",
	"nav.signed_in_as":                "Signed in as %s",
	"landing.title":                   "Customer relationships, organized",
	"landing.tagline":                 "Manage companies, contacts, campaigns and surveys from one place.",
	"landing.cta":                     "Open the portal",
	"faq.title":                       "Frequently asked questions",
	"login.title":                     "Sign in",
	"login.email":                     "Email",
	"login.password":                  "Password",
	"login.submit":                    "Sign in",
	"login.no_account":                "No account yet?",
	"signup.title":                    "Create account",
	"signup.name":                     "Full name",
	"signup.company":                  "Company",
	"signup.submit":                   "Create account",
	"signup.have_account":             "Already registered?",
	"dashboard.title":                 "Dashboard",
	"dashboard.role":                  "Role: %s",
	"dashboard.role_unknown":          "Your role is not recognized. Actions are hidden until an administrator assigns one.",
	"dashboard.areas":                 "Areas",
	"dashboard.capabilities":          "What you can do",
	"resource.companies":              "Companies",
	"resource.contacts":               "Contacts",
	"resource.contact-groups":         "Contact groups",
	"resource.campaigns":              "Campaigns",
	"resource.surveys":                "Surveys",
	"resource.tasks":                  "Tasks",
	"resource.templates":              "Templates",
	"resource.accounts":               "Accounts",
	"action.create":                   "New",
	"action.edit":                     "Edit",
	"action.delete":                   "Delete",
	"action.export":                   "Export",
	"action.execute":                  "Run campaign",
	"action.search":                   "Search",
	"action.cancel":                   "Cancel",
	"action.save":                     "Save",
	"form.new":                        "New record: %s",
	"form.edit":                       "Edit record: %s",
	"table.filter":                    "Filter",
	"table.filter_hint":               "status = \"active\"",
	"error.filter.invalid":            "That filter is not valid for this list.",
	"table.empty":                     "Nothing here yet.",
	"pager.prev":                      "Previous",
	"pager.next":                      "Next",
	"pager.summary":                   "Page %d of %d",
	"field.name":                      "Name",
	"field.industry":                  "Industry",
	"field.website":                   "Website",
	"field.phone":                     "Phone",
	"field.firstName":                 "First name",
	"field.lastName":                  "Last name",
	"field.email":                     "Email",
	"field.company":                   "Company",
	"field.description":               "Description",
	"field.members":                   "Members",
	"field.status":                    "Status",
	"field.channel":                   "Channel",
	"field.scheduledAt":               "Scheduled for",
	"field.title":                     "Title",
	"field.responses":                 "Responses",
	"field.dueDate":                   "Due date",
	"field.assignee":                  "Assignee",
	"field.subject":                   "Subject",
	"field.role":                      "Role",
	"role.super_admin":                "Super admin",
	"role.admin":                      "Admin",
	"role.manager":                    "Manager",
	"role.viewer":                     "Viewer",
	"capability.canCreate":            "Create records",
	"capability.canUpdate":            "Edit records",
	"capability.canDelete":            "Delete records",
	"capability.canViewUsers":         "View users",
	"capability.canManageCampaigns":   "Manage campaigns",
	"capability.canManageSurveys":     "Manage surveys",
	"capability.canManageContacts":    "Manage contacts",
	"capability.canManageAccounts":    "Manage accounts",
	"capability.canViewAnalytics":     "View analytics",
	"capability.canExportData":        "Export data",
	"capability.canExecuteCampaigns":  "Run campaigns",
	"error.title":                     "Something went wrong",
	"error.unauthorized":              "Your session has expired. Please sign in again.",
	"error.forbidden":                 "You do not have access to this page.",
	"error.not_found":                 "Page not found.",
	"error.unavailable":               "The CRM service is unavailable. Try again shortly.",
	"error.invalid_input":             "Please check the form and try again.",
	"error.conflict":                  "That record already exists.",
	"error.unknown":                   "Unexpected error.",
	"error.login.missing_credentials": "Email and password are required.",
	"error.signup.missing_fields":     "Name, email and password are required.",
}

var portuguese = map[string]string{
	"app.name":                        "Portal CRM",
	"nav.home":                        "Início",
	"nav.faq":                         "Perguntas frequentes",
	"nav.login":                       "Entrar",
	"nav.signup":                      "Criar conta",
	"nav.logout":                      "Sair",
	"nav.portal":                      "Portal",
	"nav.signed_in_as":                "Conectado como %s",
	"landing.title":                   "Relacionamentos com clientes, organizados",
	"landing.tagline":                 "Gerencie empresas, contatos, campanhas e pesquisas em um só lugar.",
	"landing.cta":                     "Abrir o portal",
	"faq.title":                       "Perguntas frequentes",
	"login.title":                     "Entrar",
	"login.email":                     "E-mail",
	"login.password":                  "Senha",
	"login.submit":                    "Entrar",
	"login.no_account":                "Ainda não tem conta?",
	"signup.title":                    "Criar conta",
	"signup.name":                     "Nome completo",
	"signup.company":                  "Empresa",
	"signup.submit":                   "Criar conta",
	"signup.have_account":             "Já tem cadastro?",
	"dashboard.title":                 "Painel",
	"dashboard.role":                  "Papel: %s",
	"dashboard.role_unknown":          "Seu papel não foi reconhecido. As ações ficam ocultas até um administrador atribuir um.",
	"dashboard.areas":                 "Áreas",
	"dashboard.capabilities":          "O que você pode fazer",
	"resource.companies":              "Empresas",
	"resource.contacts":               "Contatos",
	"resource.contact-groups":         "Grupos de contatos",
	"resource.campaigns":              "Campanhas",
	"resource.surveys":                "Pesquisas",
	"resource.tasks":                  "Tarefas",
	"resource.templates":              "Modelos",
	"resource.accounts":               "Contas",
	"action.create":                   "Novo",
	"action.edit":                     "Editar",
	"action.delete":                   "Excluir",
	"action.export":                   "Exportar",
	"action.execute":                  "Executar campanha",
	"action.search":                   "Buscar",
	"action.cancel":                   "Cancelar",
	"action.save":                     "Salvar",
	"form.new":                        "Novo registro: %s",
	"form.edit":                       "Editar registro: %s",
	"table.filter":                    "Filtro",
	"table.filter_hint":               "status = \"active\"",
	"error.filter.invalid":            "Esse filtro não é válido para esta lista.",
	"table.empty":                     "Nada por aqui ainda.",
	"pager.prev":                      "Anterior",
	"pager.next":                      "Próxima",
	"pager.summary":                   "Página %d de %d",
	"field.name":                      "Nome",
	"field.industry":                  "Setor",
	"field.website":                   "Site",
	"field.phone":                     "Telefone",
	"field.firstName":                 "Nome",
	"field.lastName":                  "Sobrenome",
	"field.email":                     "E-mail",
	"field.company":                   "Empresa",
	"field.description":               "Descrição",
	"field.members":                   "Membros",
	"field.status":                    "Situação",
	"field.channel":                   "Canal",
	"field.scheduledAt":               "Agendada para",
	"field.title":                     "Título",
	"field.responses":                 "Respostas",
	"field.dueDate":                   "Prazo",
	"field.assignee":                  "Responsável",
	"field.subject":                   "Assunto",
	"field.role":                      "Papel",
	"role.super_admin":                "Super administrador",
	"role.admin":                      "Administrador",
	"role.manager":                    "Gerente",
	"role.viewer":                     "Leitor",
	"capability.canCreate":            "Criar registros",
	"capability.canUpdate":            "Editar registros",
	"capability.canDelete":            "Excluir registros",
	"capability.canViewUsers":         "Ver usuários",
	"capability.canManageCampaigns":   "Gerenciar campanhas",
	"capability.canManageSurveys":     "Gerenciar pesquisas",
	"capability.canManageContacts":    "Gerenciar contatos",
	"capability.canManageAccounts":    "Gerenciar contas",
	"capability.canViewAnalytics":     "Ver análises",
	"capability.canExportData":        "Exportar dados",
	"capability.canExecuteCampaigns":  "Executar campanhas",
	"error.title":                     "Algo deu errado",
	"error.unauthorized":              "Sua sessão expirou. Entre novamente.",
	"error.forbidden":                 "Você não tem acesso a esta página.",
	"error.not_found":                 "Página não encontrada.",
	"error.unavailable":               "O serviço de CRM está indisponível. Tente novamente em instantes.",
	"error.invalid_input":             "Verifique o formulário e tente novamente.",
	"error.conflict":                  "Esse registro já existe.",
	"error.unknown":                   "Erro inesperado.",
	"error.login.missing_credentials": "E-mail e senha são obrigatórios.",
	"error.signup.missing_fields":     "Nome, e-mail e senha são obrigatórios.",
}

func init() {
	for key, value := range english {
		_ = message.SetString(language.AmericanEnglish, key, value)
	}
	for key, value := range portuguese {
		_ = message.SetString(language.BrazilianPortuguese, key, value)
	}
}

package models

// DefaultUser describes an account seeded on first creation of the store.
type DefaultUser struct {
	Username string
	Password string
	Role     string
}

func DefaultUsers() []DefaultUser {
	return []DefaultUser{
		{Username: "admin", Password: "admin", Role: RoleAdmin},
		{Username: "vinicius", Password: "user", Role: RoleUser},
	}
}

// DefaultMembershipTemplate is the HTML declaration body seeded on first
// creation. Placeholder tokens are substituted by the declaration renderer.
const DefaultMembershipTemplate = `<p>Declaramos, para os devidos fins, que o(a) Sr(a). {{NOME_ASSOCIADO}}, portador(a) do RG nº {{RG}} e inscrito(a) no CPF sob o nº {{CPF}}, encontra-se regularmente filiado(a) a esta entidade sindical, na qualidade de membro associado(a) desde {{DATA_FILIACAO}}.</p><p>Declaramos ainda que, até a presente data, não constam em nossos registros quaisquer fatos que desabonem sua condição de associado(a).</p><p>Por ser expressão da verdade, firmamos a presente declaração.</p>`

const DefaultPaymentStatusTemplate = `<p>Declaramos, para os devidos fins, que o(a) Sr(a). {{NOME_ASSOCIADO}}, inscrito(a) no CPF sob o nº {{CPF}}, associado(a) desta entidade, encontra-se em dia com suas obrigações financeiras, tendo o último pagamento registrado referente à competência de <b>{{MES_ULTIMO_PAGAMENTO}} de {{ANO_ULTIMO_PAGAMENTO}}</b>.</p><p>Por ser expressão da verdade, firmamos a presente declaração.</p>`

// DefaultSettings returns the decoded (pre-JSON) value for every setting key
// seeded on first creation.
func DefaultSettings() map[string]any {
	return map[string]any{
		SettingSyndicateName:              "SINDICATO DOS TRABALHADORES RURAIS DE INDIAROBA",
		SettingSyndicateCNPJ:              "00.000.000/0001-00",
		SettingSyndicateAddress:           "Rua da Sede, nº 123, Centro, Indiaroba/SE, CEP 49250-000",
		SettingSyndicatePhone:             "(79) 99999-9999",
		SettingDeclarationTemplate:        DefaultMembershipTemplate,
		SettingPaymentDeclarationTemplate: DefaultPaymentStatusTemplate,
		SettingSyndicateSignature:         "",
	}
}

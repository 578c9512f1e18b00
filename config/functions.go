package config

import (
	"github.com/fieldquery/fieldquery/options"
	"github.com/fieldquery/fieldquery/pkg/env"
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

const (
	FuncNameGetEnv = "get_env"

	getEnvMaxArgs = 2
)

func newEvalContext(opts *options.QueryOptions) *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			FuncNameGetEnv: getEnvFunc(opts.Env),
		},
	}
}

// getEnvFunc implements get_env(name, default = ""). vars is the environment the options were
// created with, so tests never depend on the process environment. A blank variable is unset.
func getEnvFunc(vars map[string]string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		VarParam: &function.Parameter{Name: "default", Type: cty.String},
		Type:     function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if len(args) > getEnvMaxArgs {
				return cty.StringVal(""), function.NewArgErrorf(getEnvMaxArgs, "%s expects at most %d arguments", FuncNameGetEnv, getEnvMaxArgs)
			}

			name := args[0].AsString()
			if name == "" {
				return cty.StringVal(""), function.NewArgErrorf(0, "%s requires a variable name", FuncNameGetEnv)
			}

			if value, ok := env.Lookup(vars, name); ok {
				return cty.StringVal(value), nil
			}

			if len(args) == getEnvMaxArgs {
				return args[1], nil
			}

			return cty.StringVal(""), nil
		},
	})
}

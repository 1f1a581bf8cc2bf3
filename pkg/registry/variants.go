package registry

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"surfaces/pkg/contract"
	"surfaces/plugins/surface/analytic"
)

// Values: 按规范名解析后的标量输入。
type Values map[string]float64

// NewFormula 变体构造签名：输入已通过缺失/有限性/范围校验。
type NewFormula func(dom contract.Domain, v Values) contract.Formula

// VariantEntry: 注册表条目。New 必须返回完整实现四项能力的 Formula（编译期由接口保证）。
type VariantEntry struct {
	Tag     contract.Variant
	Aliases []string
	Label   string
	Params  []contract.ParamSpec
	New     NewFormula
}

// 推荐范围取自原界面控件：正形状参数 [0.1, 10]，斜率 [-10, 10]，步长 0.1。
func positive(key, label string, aliases ...string) contract.ParamSpec {
	return contract.ParamSpec{Key: key, Aliases: aliases, Label: label, Min: 0.1, Max: 10, Step: 0.1, Default: 1}
}

// Variants 变体注册表（显式、零反射）。
var Variants = map[contract.Variant]VariantEntry{
	contract.Plano: {
		Tag: contract.Plano, Aliases: []string{"Plane"}, Label: "Plano",
		Params: []contract.ParamSpec{{Key: "pendiente", Aliases: []string{"slope"}, Label: "pendiente del plano", Min: -10, Max: 10, Step: 0.1, Default: 0}},
		New: func(d contract.Domain, v Values) contract.Formula {
			return analytic.Plane{Dom: d, Pendiente: v["pendiente"]}
		},
	},
	contract.Paraboloide: {
		Tag: contract.Paraboloide, Aliases: []string{"Paraboloid"}, Label: "Paraboloide",
		Params: []contract.ParamSpec{positive("coeficiente", "coeficiente del paraboloide", "coef")},
		New: func(d contract.Domain, v Values) contract.Formula {
			return analytic.Paraboloid{Dom: d, Coef: v["coeficiente"]}
		},
	},
	contract.Sinusoide: {
		Tag: contract.Sinusoide, Aliases: []string{"Sinusoid"}, Label: "Sinusoide",
		// frecuencia 允许 0：sin(0) 恒为 0 的退化场仍是合法配置
		Params: []contract.ParamSpec{{Key: "frecuencia", Aliases: []string{"freq", "frequency"}, Label: "frecuencia de la sinusoide", Min: 0, Max: 10, Step: 0.1, Default: 1}},
		New: func(d contract.Domain, v Values) contract.Formula {
			return analytic.Sinusoid{Dom: d, Frecuencia: v["frecuencia"]}
		},
	},
	contract.HiperboloideDeUnaHoja: {
		Tag: contract.HiperboloideDeUnaHoja, Aliases: []string{"OneSheetHyperboloid", "Hiperboloide de una hoja"}, Label: "Hiperboloide de una hoja",
		Params: []contract.ParamSpec{positive("a", "valor de a"), positive("b", "valor de b"), positive("c", "valor de c")},
		New: func(d contract.Domain, v Values) contract.Formula {
			return analytic.Hyperboloid{Dom: d, A: v["a"], B: v["b"], C: v["c"]}
		},
	},
	contract.Esfera: {
		Tag: contract.Esfera, Aliases: []string{"Sphere"}, Label: "Esfera",
		Params: []contract.ParamSpec{positive("radio", "radio de la esfera", "r", "radius")},
		New: func(d contract.Domain, v Values) contract.Formula {
			return analytic.Sphere{Dom: d, Radio: v["radio"]}
		},
	},
	contract.Cilindro: {
		Tag: contract.Cilindro, Aliases: []string{"Cylinder"}, Label: "Cilindro",
		Params: []contract.ParamSpec{positive("radio", "radio del cilindro", "r", "radius")},
		New: func(d contract.Domain, v Values) contract.Formula {
			return analytic.Cylinder{Dom: d, Radio: v["radio"]}
		},
	},
	contract.Cono: {
		Tag: contract.Cono, Aliases: []string{"Cone"}, Label: "Cono",
		Params: []contract.ParamSpec{positive("a", "valor de a del cono")},
		New: func(d contract.Domain, v Values) contract.Formula {
			return analytic.Cone{Dom: d, A: v["a"]}
		},
	},
}

// Tags 返回按界面顺序排列的规范标签。
func Tags() []contract.Variant {
	order := []contract.Variant{
		contract.Plano, contract.Paraboloide, contract.Sinusoide, contract.HiperboloideDeUnaHoja,
		contract.Esfera, contract.Cilindro, contract.Cono,
	}
	out := make([]contract.Variant, 0, len(Variants))
	seen := map[contract.Variant]bool{}
	for _, t := range order {
		if _, ok := Variants[t]; ok {
			out = append(out, t)
			seen[t] = true
		}
	}
	// 额外注册的变体按字典序追加
	var extra []string
	for t := range Variants {
		if !seen[t] {
			extra = append(extra, string(t))
		}
	}
	sort.Strings(extra)
	for _, t := range extra {
		out = append(out, contract.Variant(t))
	}
	return out
}

// Lookup 解析规范标签或别名（别名大小写不敏感）。
func Lookup(tag string) (VariantEntry, bool) {
	name := strings.TrimSpace(tag)
	if e, ok := Variants[contract.Variant(name)]; ok {
		return e, true
	}
	for _, e := range Variants {
		if strings.EqualFold(string(e.Tag), name) {
			return e, true
		}
		for _, a := range e.Aliases {
			if strings.EqualFold(a, name) {
				return e, true
			}
		}
	}
	return VariantEntry{}, false
}

// Specs 返回变体声明的参数（供界面协作者渲染输入控件）。
func Specs(tag string) ([]contract.ParamSpec, error) {
	e, ok := Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", contract.ErrUnknownVariant, tag)
	}
	out := make([]contract.ParamSpec, len(e.Params))
	copy(out, e.Params)
	return out, nil
}

// Defaults 返回变体的默认输入（规范名 → 默认值）。
func Defaults(tag string) (Values, error) {
	specs, err := Specs(tag)
	if err != nil {
		return nil, err
	}
	out := make(Values, len(specs))
	for _, p := range specs {
		out[p.Key] = p.Default
	}
	return out, nil
}

// Check 在启动期校验注册表：构造器非空、参数名与别名在变体内唯一、默认值位于推荐范围、
// 变体别名全局唯一。
func Check() error {
	names := map[string]contract.Variant{}
	for tag, e := range Variants {
		if e.Tag != tag {
			return fmt.Errorf("registry: entry %q declares tag %q", tag, e.Tag)
		}
		if e.New == nil {
			return fmt.Errorf("registry: variant %q has no constructor", tag)
		}
		for _, n := range append([]string{string(tag)}, e.Aliases...) {
			k := strings.ToLower(n)
			if prev, dup := names[k]; dup {
				return fmt.Errorf("registry: name %q used by %q and %q", n, prev, tag)
			}
			names[k] = tag
		}
		keys := map[string]bool{}
		for _, p := range e.Params {
			if p.Min > p.Max {
				return fmt.Errorf("registry: %s.%s min > max", tag, p.Key)
			}
			if !p.Contains(p.Default) {
				return fmt.Errorf("registry: %s.%s default %g outside [%g, %g]", tag, p.Key, p.Default, p.Min, p.Max)
			}
			for _, k := range append([]string{p.Key}, p.Aliases...) {
				if keys[k] {
					return fmt.Errorf("registry: %s parameter name %q duplicated", tag, k)
				}
				keys[k] = true
			}
		}
	}
	return nil
}

// resolve 将调用方输入映射到规范名，并做缺失/有限性/范围校验；未知键拒绝。
func resolve(e VariantEntry, in map[string]float64, checkRange bool) (Values, error) {
	owner := map[string]string{}
	for _, p := range e.Params {
		owner[p.Key] = p.Key
		for _, a := range p.Aliases {
			owner[a] = p.Key
		}
	}
	out := make(Values, len(e.Params))
	for k, v := range in {
		key, ok := owner[strings.TrimSpace(k)]
		if !ok {
			return nil, fmt.Errorf("%w: %s does not accept %q", contract.ErrInvalidParameter, e.Tag, k)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: %s.%s given more than once", contract.ErrInvalidParameter, e.Tag, key)
		}
		out[key] = v
	}
	for _, p := range e.Params {
		v, ok := out[p.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s missing", contract.ErrInvalidParameter, e.Tag, p.Key)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s.%s not finite", contract.ErrInvalidParameter, e.Tag, p.Key)
		}
		if checkRange && !p.Contains(v) {
			return nil, fmt.Errorf("%w: %s.%s=%g outside [%g, %g]", contract.ErrInvalidParameter, e.Tag, p.Key, v, p.Min, p.Max)
		}
	}
	return out, nil
}

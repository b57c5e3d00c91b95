package form

import (
	"strings"

	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/schema"
)

// isMapLike reports whether an object schema describes free-form keys: a
// single property named like "<function>" or "<name>".
func isMapLike(keys []string) bool {
	if len(keys) != 1 || keys[0] == "" {
		return false
	}
	k := keys[0]
	return strings.HasPrefix(k, "<function") || (strings.HasPrefix(k, "<") && strings.HasSuffix(k, ">"))
}

func isMQTTField(n schema.Node) bool {
	return n.Hints().IsMQTTOnly()
}

func renderObjectForm(env Env, path Path, node *schema.Object, value *document.Mapping, onChange func(*document.Mapping), hidden map[string]bool) Widget {
	var keys []string
	if node.Properties != nil {
		for p := node.Properties.Oldest(); p != nil; p = p.Next() {
			if !hidden[p.Key] {
				keys = append(keys, p.Key)
			}
		}
	}

	if isMapLike(keys) {
		valueNode, _ := node.Properties.Get(keys[0])
		return renderMapEditor(env, path, path, "", valueNode, value, onChange)
	}

	var requiredKeys, optionalKeys, mqttKeys []string
	for _, k := range keys {
		if k == "platform" {
			continue
		}
		if node.IsRequired(k) {
			requiredKeys = append(requiredKeys, k)
			continue
		}
		optionalKeys = append(optionalKeys, k)
		if prop, _ := node.Properties.Get(k); isMQTTField(prop) {
			mqttKeys = append(mqttKeys, k)
		}
	}

	field := func(k string, required bool) Widget {
		prop, _ := node.Properties.Get(k)
		current, _ := value.Get(k)
		return renderField(env, path, k, prop, current, required, func(next any) {
			out := document.ShallowCopy(value)
			if IsUnset(next) {
				out.Delete(k)
			} else {
				out.Set(k, next)
			}
			onChange(out)
		})
	}

	form := &Form{Path: path.String(), Divider: -1}
	for _, k := range requiredKeys {
		form.Fields = append(form.Fields, field(k, true))
	}

	isMQTT := make(map[string]bool, len(mqttKeys))
	for _, k := range mqttKeys {
		isMQTT[k] = true
	}
	visible := optionalKeys
	if !env.MQTTEnabled && len(mqttKeys) > 0 {
		visible = nil
		for _, k := range optionalKeys {
			if !isMQTT[k] {
				visible = append(visible, k)
			}
		}
	}
	if len(requiredKeys) > 0 && len(visible) > 0 {
		form.Divider = len(form.Fields)
	}

	grouped := false
	for _, k := range visible {
		if !isMQTT[k] || !env.MQTTEnabled {
			form.Fields = append(form.Fields, field(k, false))
			continue
		}
		if grouped {
			continue
		}
		grouped = true
		group := &renderer{env: env}
		form.Fields = append(form.Fields, group.collapsible(path.Scope("__mqtt"), "MQTT", func() Widget {
			body := &Form{Path: path.Scope("__mqtt").String(), Divider: -1}
			for _, mk := range mqttKeys {
				body.Fields = append(body.Fields, field(mk, false))
			}
			return body
		}))
	}
	return form
}

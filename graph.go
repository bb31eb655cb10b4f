package tinydi

import "github.com/go-logr/logr"

type color int

const (
	unvisited color = iota
	inProgress
	done
)

// analyze resolves parameters of every constructible and proves the graph
// acyclic. Instances and factories are leaves: their dependencies are not
// visible until they run.
func (r *registry) analyze(log logr.Logger, silenceCaptive bool) error {
	colors := make(map[*descriptor]color, len(r.descriptors))

	for _, d := range r.descriptors {
		if !d.kind.constructible() {
			continue
		}

		if err := r.visit(d, colors, nil, log, silenceCaptive); err != nil {
			return err
		}
	}

	return nil
}

func (r *registry) visit(
	d *descriptor, colors map[*descriptor]color, stack []*descriptor,
	log logr.Logger, silenceCaptive bool,
) error {
	switch colors[d] {
	case inProgress:
		return newServiceBuilderError(newCircularDependencyError(cycle(stack, d)), d.lifetime, d.key)
	case done:
		return nil
	}

	colors[d] = inProgress
	stack = append(stack, d)

	if err := r.plan(d); err != nil {
		return newServiceBuilderError(err, d.lifetime, d.key)
	}

	for _, dep := range d.plan {
		if !silenceCaptive && d.lifetime > dep.lifetime {
			log.Info(
				"captive dependency: dependency will live as long as its dependant",
				"service", d.key.String(),
				"lifetime", d.lifetime.String(),
				"dependency", dep.key.String(),
				"dependencyLifetime", dep.lifetime.String(),
			)
		}

		if !dep.kind.constructible() {
			continue
		}

		if err := r.visit(dep, colors, stack, log, silenceCaptive); err != nil {
			return err
		}
	}

	colors[d] = done

	return nil
}

func (r *registry) plan(d *descriptor) error {
	if d.plan != nil || len(d.ctor.Params) == 0 {
		return nil
	}

	plan := make([]*descriptor, len(d.ctor.Params))
	for i, param := range d.ctor.Params {
		dep, err := r.resolveParam(d, param)
		if err != nil {
			return err
		}

		plan[i] = dep
	}

	d.plan = plan

	return nil
}

func cycle(stack []*descriptor, d *descriptor) []Key {
	start := 0
	for i, s := range stack {
		if s == d {
			start = i
			break
		}
	}

	chain := make([]Key, 0, len(stack)-start+1)
	for _, s := range stack[start:] {
		chain = append(chain, s.key)
	}

	return append(chain, d.key)
}
